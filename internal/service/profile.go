package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/gosimple/slug"

	"cardlink/internal/apperr"
	"cardlink/internal/core/cache"
	"cardlink/internal/domain"
	"cardlink/internal/validate"
	"cardlink/pkg/utils"
)

const profileCacheTTL = 30 * time.Second

// ProfileService 主页 CRUD。直建路径允许一个账号多个主页，
// slug 由 business_name 自动生成、冲突时加随机后缀（与认领路径策略不同，见 DESIGN.md）。
type ProfileService struct {
	profiles domain.ProfileRepository
	cache    *cache.Cache // 可为 nil（测试、后台进程）
}

func NewProfileService(profiles domain.ProfileRepository, c *cache.Cache) *ProfileService {
	return &ProfileService{profiles: profiles, cache: c}
}

// ProfileInput 编辑器提交的主页字段。socials/cards 保持原始 JSON 存库。
type ProfileInput struct {
	BusinessName string          `json:"business_name"`
	Tagline      string          `json:"tagline"`
	Bio          string          `json:"bio"`
	Initials     string          `json:"initials"`
	Emoji        string          `json:"emoji"`
	AvatarStyle  string          `json:"avatar_style"`
	Theme        string          `json:"theme"`
	Socials      json.RawMessage `json:"socials"`
	Cards        json.RawMessage `json:"cards"`
}

// View 公开读取用的形态，socials/cards 原样透出
type View struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	BusinessName string          `json:"businessName"`
	Tagline      string          `json:"tagline"`
	Bio          string          `json:"bio"`
	Initials     string          `json:"initials"`
	Emoji        string          `json:"emoji"`
	AvatarStyle  string          `json:"avatarStyle"`
	LogoURL      string          `json:"logoUrl,omitempty"`
	Theme        string          `json:"theme"`
	Socials      json.RawMessage `json:"socials"`
	Cards        json.RawMessage `json:"cards"`
	CardLimit    int             `json:"cardLimit"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func toView(p *domain.Profile) *View {
	return &View{
		ID:           p.ID,
		Slug:         p.Slug,
		BusinessName: p.BusinessName,
		Tagline:      p.Tagline,
		Bio:          p.Bio,
		Initials:     p.Initials,
		Emoji:        p.Emoji,
		AvatarStyle:  p.AvatarStyle,
		LogoURL:      p.LogoURL,
		Theme:        p.Theme,
		Socials:      json.RawMessage(p.Socials),
		Cards:        json.RawMessage(p.Cards),
		CardLimit:    p.CardLimit,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func randomSuffix() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 4)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}

func (s *ProfileService) List(ownerID string) ([]View, error) {
	ps, err := s.profiles.ListByOwner(ownerID)
	if err != nil {
		return nil, apperr.Internal("list profiles failed", err)
	}
	out := make([]View, 0, len(ps))
	for i := range ps {
		out = append(out, *toView(&ps[i]))
	}
	return out, nil
}

func (s *ProfileService) Create(ownerID string, in *ProfileInput) (*domain.Profile, error) {
	name := validate.SanitizeString(in.BusinessName, 200)
	if name == "" {
		return nil, apperr.BadRequest(apperr.CodeMissingName, "Business name is required")
	}

	sl := slug.Make(name)
	if len(sl) > 45 {
		sl = sl[:45]
	}
	if !validate.IsValidSlug(sl) {
		sl = "profile-" + randomSuffix()
	}
	existing, err := s.profiles.FindBySlug(sl)
	if err != nil {
		return nil, apperr.Internal("create profile failed", err)
	}
	if existing != nil {
		sl = sl + "-" + randomSuffix()
	}

	p := &domain.Profile{
		ID:           utils.NewID(),
		Slug:         sl,
		OwnerID:      ownerID,
		BusinessName: name,
		CardLimit:    domain.DefaultCardLimit,
	}
	applyInput(p, in)
	if err := s.profiles.Create(p); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, apperr.Conflict(apperr.CodeSlugTaken, "Slug already taken")
		}
		return nil, apperr.Internal("create profile failed", err)
	}
	return p, nil
}

// GetPublic 公开读取，短 TTL 缓存顶住公开页的读放大
func (s *ProfileService) GetPublic(ctx context.Context, sl string) (*View, error) {
	if !validate.IsValidSlug(sl) {
		return nil, apperr.BadRequest(apperr.CodeBadSlug, "Invalid slug")
	}
	if s.cache == nil {
		return s.loadView(sl)
	}
	v, err := cache.GetOrLoadJSON[View](s.cache, ctx, cacheKey(sl), profileCacheTTL,
		func(context.Context) (*View, error) { return s.loadView(sl) })
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ProfileService) loadView(sl string) (*View, error) {
	p, err := s.profiles.FindBySlug(sl)
	if err != nil {
		return nil, apperr.Internal("fetch profile failed", err)
	}
	if p == nil {
		return nil, apperr.NotFound("Profile not found")
	}
	return toView(p), nil
}

func (s *ProfileService) Update(ctx context.Context, sl, userID string, in *ProfileInput) (*domain.Profile, error) {
	if !validate.IsValidSlug(sl) {
		return nil, apperr.BadRequest(apperr.CodeBadSlug, "Invalid slug")
	}
	p, err := s.profiles.FindBySlug(sl)
	if err != nil {
		return nil, apperr.Internal("update profile failed", err)
	}
	if p == nil {
		return nil, apperr.NotFound("Profile not found")
	}
	if p.OwnerID != userID {
		return nil, apperr.Forbidden(apperr.CodeForbidden, "Not your profile")
	}

	if n := cardCount(in.Cards); n > p.CardLimit {
		return nil, apperr.BadRequest(apperr.CodeCardLimitReached, "Card limit reached")
	}
	name := validate.SanitizeString(in.BusinessName, 200)
	if name == "" {
		return nil, apperr.BadRequest(apperr.CodeMissingName, "Business name is required")
	}

	p.BusinessName = name
	applyInput(p, in)
	if err := s.profiles.Update(p); err != nil {
		return nil, apperr.Internal("update profile failed", err)
	}
	s.invalidate(ctx, sl)
	return p, nil
}

func (s *ProfileService) Delete(ctx context.Context, sl, userID string) error {
	if !validate.IsValidSlug(sl) {
		return apperr.BadRequest(apperr.CodeBadSlug, "Invalid slug")
	}
	p, err := s.profiles.FindBySlug(sl)
	if err != nil {
		return apperr.Internal("delete profile failed", err)
	}
	if p == nil {
		return apperr.NotFound("Profile not found")
	}
	if p.OwnerID != userID {
		return apperr.Forbidden(apperr.CodeForbidden, "Not your profile")
	}
	if err := s.profiles.Delete(p.ID); err != nil {
		return apperr.Internal("delete profile failed", err)
	}
	s.invalidate(ctx, sl)
	return nil
}

func applyInput(p *domain.Profile, in *ProfileInput) {
	p.Tagline = validate.SanitizeString(in.Tagline, 300)
	p.Bio = validate.SanitizeString(in.Bio, 1000)
	p.Initials = validate.SanitizeString(in.Initials, 3)
	p.Emoji = validate.SanitizeString(in.Emoji, 10)
	switch in.AvatarStyle {
	case "emoji", "logo", "initials":
		p.AvatarStyle = in.AvatarStyle
	default:
		p.AvatarStyle = "initials"
	}
	if t := validate.SanitizeString(in.Theme, 30); t != "" {
		p.Theme = t
	} else {
		p.Theme = "midnight"
	}
	p.Socials = rawOrEmpty(in.Socials)
	p.Cards = rawOrEmpty(in.Cards)
}

func rawOrEmpty(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "[]"
	}
	return string(raw)
}

func cardCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var cards []json.RawMessage
	if err := json.Unmarshal(raw, &cards); err != nil {
		return 0
	}
	return len(cards)
}

func cacheKey(sl string) string { return "profile:" + sl }

func (s *ProfileService) invalidate(ctx context.Context, sl string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.RDB.Del(ctx, cacheKey(sl)).Err()
}
