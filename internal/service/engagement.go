package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cardlink/internal/apperr"
	"cardlink/internal/core/mail"
	"cardlink/internal/domain"
	"cardlink/internal/validate"
)

// EngagementService 公开页上的互动卡片：投票、联系表单、邮箱订阅
type EngagementService struct {
	profiles domain.ProfileRepository
	users    domain.UserRepository
	polls    domain.PollRepository
	subs     domain.SubscriberRepository
	mailer   mail.Mailer
	log      *zap.Logger
}

func NewEngagementService(
	profiles domain.ProfileRepository,
	users domain.UserRepository,
	polls domain.PollRepository,
	subs domain.SubscriberRepository,
	mailer mail.Mailer,
	log *zap.Logger,
) *EngagementService {
	return &EngagementService{
		profiles: profiles,
		users:    users,
		polls:    polls,
		subs:     subs,
		mailer:   mailer,
		log:      log,
	}
}

func (s *EngagementService) PollResults(slug, cardID string) (map[int]int, error) {
	counts, err := s.polls.Counts(slug, cardID)
	if err != nil {
		return nil, apperr.Internal("fetch poll results failed", err)
	}
	return counts, nil
}

func (s *EngagementService) Vote(slug, cardID string, optionIndex int, voterIP string) (map[int]int, error) {
	if slug == "" || cardID == "" {
		return nil, apperr.BadRequest(apperr.CodeBadRequest, "Missing required fields")
	}
	if optionIndex < 0 || optionIndex > 9 {
		return nil, apperr.BadRequest(apperr.CodeBadRequest, "Invalid option index")
	}
	v := &domain.PollVote{ProfileSlug: slug, CardID: cardID, OptionIndex: optionIndex, VoterIP: voterIP}
	if err := s.polls.AddVote(v); err != nil {
		return nil, apperr.Internal("record vote failed", err)
	}
	counts, err := s.polls.Counts(slug, cardID)
	if err != nil {
		return nil, apperr.Internal("record vote failed", err)
	}
	return counts, nil
}

type ContactInput struct {
	ProfileSlug    string `json:"profileSlug"`
	RecipientEmail string `json:"recipientEmail"`
	FormData       struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	} `json:"formData"`
}

// Contact 联系表单转发给主页归属人。收件人必须与归属人邮箱一致，
// 防止别人拿这个接口当免费邮件网关。
func (s *EngagementService) Contact(in *ContactInput) error {
	if in.ProfileSlug == "" || in.RecipientEmail == "" {
		return apperr.BadRequest(apperr.CodeBadRequest, "Missing required fields")
	}
	if !validate.IsValidEmail(in.RecipientEmail) {
		return apperr.BadRequest(apperr.CodeBadRequest, "Invalid recipient email")
	}
	owner, err := s.profileOwner(in.ProfileSlug)
	if err != nil {
		return err
	}
	if owner.Email != in.RecipientEmail {
		return apperr.Forbidden(apperr.CodeForbidden, "Recipient email does not match profile owner")
	}

	name := validate.SanitizeString(in.FormData.Name, 100)
	email := validate.SanitizeString(in.FormData.Email, 200)
	phone := validate.SanitizeString(in.FormData.Phone, 30)
	message := validate.SanitizeString(in.FormData.Message, 2000)

	lines := []string{"Name: " + name, "Email: " + email}
	if phone != "" {
		lines = append(lines, "Phone: "+phone)
	}
	if message != "" {
		lines = append(lines, "Message:\n"+message)
	}
	if name == "" {
		name = "visitor"
	}
	subject := fmt.Sprintf("Contact form submission from %s — %s", name, in.ProfileSlug)
	if err := s.mailer.Send(in.RecipientEmail, subject, strings.Join(lines, "\n\n")); err != nil {
		return apperr.Internal("send message failed", err)
	}
	return nil
}

// Subscribe 邮箱订阅。重复订阅幂等；给归属人的提醒邮件发不出去
// 只记日志，订阅本身已经落库，不回滚。
func (s *EngagementService) Subscribe(slug, cardID, email string) error {
	if slug == "" || cardID == "" || email == "" {
		return apperr.BadRequest(apperr.CodeBadRequest, "Missing required fields")
	}
	if !validate.IsValidEmail(email) {
		return apperr.BadRequest(apperr.CodeBadRequest, "Invalid email address")
	}
	p, err := s.profiles.FindBySlug(slug)
	if err != nil {
		return apperr.Internal("subscribe failed", err)
	}
	if p == nil {
		return apperr.NotFound("Profile not found")
	}

	added, err := s.subs.Add(&domain.Subscriber{ProfileSlug: slug, CardID: cardID, Email: email})
	if err != nil {
		return apperr.Internal("subscribe failed", err)
	}
	if !added {
		return nil
	}

	owner, err := s.profileOwner(slug)
	if err != nil {
		s.log.Warn("subscriber notification skipped", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	body := fmt.Sprintf("You have a new email subscriber!\n\nEmail: %s\nProfile: %s\nTime: %s",
		email, slug, time.Now().UTC().Format(time.RFC3339))
	if err := s.mailer.Send(owner.Email, "New subscriber on "+slug, body); err != nil {
		s.log.Error("subscriber notification failed", zap.String("slug", slug), zap.Error(err))
	}
	return nil
}

func (s *EngagementService) profileOwner(slug string) (*domain.User, error) {
	p, err := s.profiles.FindBySlug(slug)
	if err != nil {
		return nil, apperr.Internal("fetch profile failed", err)
	}
	if p == nil {
		return nil, apperr.NotFound("Profile not found")
	}
	u, err := s.users.FindByID(p.OwnerID)
	if err != nil || u == nil {
		return nil, apperr.Internal("fetch profile owner failed", err)
	}
	return u, nil
}
