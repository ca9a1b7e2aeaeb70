package service

import (
	"errors"

	"cardlink/internal/apperr"
	"cardlink/internal/domain"
	"cardlink/internal/validate"
	"cardlink/pkg/utils"
)

// HandleService 处理 handle 认领。此路径上每个账号至多一个主页；
// POST /profiles 的直建路径则允许多个（产品层面的既有不一致，保留现状）。
type HandleService struct {
	profiles domain.ProfileRepository
}

func NewHandleService(profiles domain.ProfileRepository) *HandleService {
	return &HandleService{profiles: profiles}
}

type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // invalid / reserved / taken
}

func (s *HandleService) Check(raw string) (*Availability, error) {
	h := validate.NormalizeHandle(raw)
	if !validate.IsValidHandle(h) {
		return &Availability{Available: false, Reason: "invalid"}, nil
	}
	if validate.IsReserved(h) {
		return &Availability{Available: false, Reason: "reserved"}, nil
	}
	p, err := s.profiles.FindBySlug(h)
	if err != nil {
		return nil, apperr.Internal("check failed", err)
	}
	if p != nil {
		return &Availability{Available: false, Reason: "taken"}, nil
	}
	return &Availability{Available: true}, nil
}

// Claim 认领 handle。前置的存在性检查只是快速失败，
// 两个并发认领都可能通过预检，最终以唯一索引为准：
// 插入撞唯一约束时翻译成与预检一致的 HANDLE_TAKEN。
func (s *HandleService) Claim(userID, raw string) (*domain.Profile, error) {
	h := validate.NormalizeHandle(raw)
	if !validate.IsValidHandle(h) {
		return nil, apperr.BadRequest(apperr.CodeInvalidHandle, "Invalid handle format")
	}
	if validate.IsReserved(h) {
		return nil, apperr.BadRequest(apperr.CodeHandleReserved, "Handle is reserved")
	}

	existing, err := s.profiles.FirstByOwner(userID)
	if err != nil {
		return nil, apperr.Internal("claim failed", err)
	}
	if existing != nil {
		return nil, apperr.Conflict(apperr.CodeProfileExists, "You already have a profile")
	}

	taken, err := s.profiles.FindBySlug(h)
	if err != nil {
		return nil, apperr.Internal("claim failed", err)
	}
	if taken != nil {
		return nil, apperr.Conflict(apperr.CodeHandleTaken, "Handle already taken")
	}

	// business_name 先用 handle 占位，用户之后在编辑器里改
	p := &domain.Profile{
		ID:           utils.NewID(),
		Slug:         h,
		OwnerID:      userID,
		BusinessName: h,
		AvatarStyle:  "initials",
		Theme:        "midnight",
		Socials:      "[]",
		Cards:        "[]",
		CardLimit:    domain.DefaultCardLimit,
	}
	if err := s.profiles.Create(p); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, apperr.Conflict(apperr.CodeHandleTaken, "Handle already taken")
		}
		return nil, apperr.Internal("claim failed", err)
	}
	return p, nil
}

// Mine 返回当前用户已认领的 slug，没有则为空串
func (s *HandleService) Mine(userID string) (string, error) {
	p, err := s.profiles.FirstByOwner(userID)
	if err != nil {
		return "", apperr.Internal("check failed", err)
	}
	if p == nil {
		return "", nil
	}
	return p.Slug, nil
}
