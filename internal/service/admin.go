package service

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"cardlink/internal/apperr"
	"cardlink/internal/core/auth"
	"cardlink/internal/domain"
)

// AdminService 管理端操作与模拟登录。审计写入尽力而为：
// 失败只打日志，绝不让主操作跟着失败。
type AdminService struct {
	users    domain.UserRepository
	profiles domain.ProfileRepository
	audit    domain.AuditRepository
	jwter    *auth.JWTer
	log      *zap.Logger

	// allowAdminModify 允许管理员动其他管理员账号（默认关）
	allowAdminModify bool
}

func NewAdminService(
	users domain.UserRepository,
	profiles domain.ProfileRepository,
	audit domain.AuditRepository,
	jwter *auth.JWTer,
	log *zap.Logger,
	allowAdminModify bool,
) *AdminService {
	return &AdminService{
		users:            users,
		profiles:         profiles,
		audit:            audit,
		jwter:            jwter,
		log:              log,
		allowAdminModify: allowAdminModify,
	}
}

func (s *AdminService) writeAudit(adminID, action, targetID string, meta map[string]any) {
	if meta == nil {
		meta = map[string]any{}
	}
	b, _ := json.Marshal(meta)
	e := &domain.AuditEntry{AdminID: adminID, Action: action, TargetID: targetID, Metadata: string(b)}
	if err := s.audit.Create(e); err != nil {
		s.log.Error("audit write failed",
			zap.String("action", action),
			zap.String("target", targetID),
			zap.Error(err))
	}
}

// ---------- 用户管理 ----------

type UserRow struct {
	domain.User
	ProfileCount int64 `json:"profileCount"`
}

func (s *AdminService) ListUsers(search string, offset, limit int) ([]UserRow, int64, error) {
	users, total, err := s.users.List(search, offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("list users failed", err)
	}
	rows := make([]UserRow, 0, len(users))
	for i := range users {
		n, err := s.profiles.CountByOwner(users[i].ID)
		if err != nil {
			return nil, 0, apperr.Internal("list users failed", err)
		}
		rows = append(rows, UserRow{User: users[i], ProfileCount: n})
	}
	return rows, total, nil
}

func (s *AdminService) GetUser(id string) (*domain.User, []domain.Profile, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, nil, apperr.Internal("fetch user failed", err)
	}
	if u == nil {
		return nil, nil, apperr.NotFound("User not found")
	}
	ps, err := s.profiles.ListByOwner(id)
	if err != nil {
		return nil, nil, apperr.Internal("fetch user failed", err)
	}
	return u, ps, nil
}

type UpdateUserInput struct {
	Role            *string `json:"role"`
	IsSuspended     *bool   `json:"is_suspended"`
	SuspendedReason string  `json:"suspended_reason"`
}

func (s *AdminService) UpdateUser(adminID, targetID string, in *UpdateUserInput) (*domain.User, error) {
	if targetID == adminID {
		return nil, apperr.BadRequest(apperr.CodeSelfModify, "Cannot modify your own account")
	}
	target, err := s.users.FindByID(targetID)
	if err != nil {
		return nil, apperr.Internal("update user failed", err)
	}
	if target == nil {
		return nil, apperr.NotFound("User not found")
	}
	if target.Role == domain.RoleAdmin && !s.allowAdminModify {
		return nil, apperr.Forbidden(apperr.CodeForbidden, "Cannot modify another admin account")
	}
	if in.Role == nil && in.IsSuspended == nil {
		return nil, apperr.BadRequest(apperr.CodeNoFields, "No valid fields to update")
	}

	// 审计攒到更新落库成功后再写，失败的变更不留下"已执行"的记录
	type pendingAudit struct {
		action string
		meta   map[string]any
	}
	var audits []pendingAudit

	if in.Role != nil {
		role := *in.Role
		if role != domain.RoleUser && role != domain.RoleAdmin {
			return nil, apperr.BadRequest(apperr.CodeBadRole, `role must be "user" or "admin"`)
		}
		target.Role = role
		audits = append(audits, pendingAudit{"update_role", map[string]any{"new_role": role}})
	}
	if in.IsSuspended != nil {
		if *in.IsSuspended {
			now := time.Now()
			target.IsSuspended = true
			target.SuspendedAt = &now
			target.SuspendedReason = in.SuspendedReason
			audits = append(audits, pendingAudit{"suspend", map[string]any{"reason": in.SuspendedReason}})
		} else {
			target.IsSuspended = false
			target.SuspendedAt = nil
			target.SuspendedReason = ""
			audits = append(audits, pendingAudit{"unsuspend", nil})
		}
	}
	if err := s.users.Update(target); err != nil {
		return nil, apperr.Internal("update user failed", err)
	}
	for _, a := range audits {
		s.writeAudit(adminID, a.action, targetID, a.meta)
	}
	return target, nil
}

func (s *AdminService) DeleteUser(adminID, targetID string) error {
	if targetID == adminID {
		return apperr.BadRequest(apperr.CodeSelfDelete, "Cannot delete your own account")
	}
	target, err := s.users.FindByID(targetID)
	if err != nil {
		return apperr.Internal("delete user failed", err)
	}
	if target == nil {
		return apperr.NotFound("User not found")
	}
	if target.Role == domain.RoleAdmin && !s.allowAdminModify {
		return apperr.Forbidden(apperr.CodeForbidden, "Cannot delete another admin account")
	}

	// 删完邮箱就没了，先写审计
	s.writeAudit(adminID, "delete_user", targetID, map[string]any{"email": target.Email})

	// 级联：先删名下主页再删账号
	if err := s.profiles.DeleteByOwner(targetID); err != nil {
		return apperr.Internal("delete user failed", err)
	}
	if err := s.users.Delete(targetID); err != nil {
		return apperr.Internal("delete user failed", err)
	}
	return nil
}

// ---------- 主页管理 ----------

func (s *AdminService) ListProfiles(search string, offset, limit int) ([]domain.ProfileWithOwner, int64, error) {
	rows, total, err := s.profiles.ListWithOwner(search, offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("list profiles failed", err)
	}
	return rows, total, nil
}

func (s *AdminService) DeleteProfile(adminID, slug string) error {
	p, err := s.profiles.FindBySlug(slug)
	if err != nil {
		return apperr.Internal("delete profile failed", err)
	}
	if p == nil {
		return apperr.NotFound("Profile not found")
	}
	s.writeAudit(adminID, "delete_profile", p.ID, map[string]any{"slug": p.Slug, "owner_id": p.OwnerID})
	if err := s.profiles.Delete(p.ID); err != nil {
		return apperr.Internal("delete profile failed", err)
	}
	return nil
}

func (s *AdminService) SetCardLimit(adminID, slug string, limit int) (*domain.Profile, error) {
	if limit < 1 || limit > 100 {
		return nil, apperr.BadRequest(apperr.CodeInvalidLimit, "card_limit must be an integer between 1 and 100")
	}
	p, err := s.profiles.UpdateCardLimit(slug, limit)
	if err != nil {
		return nil, apperr.Internal("update card limit failed", err)
	}
	if p == nil {
		return nil, apperr.NotFound("Profile not found")
	}
	s.writeAudit(adminID, "override_limit", p.ID, map[string]any{"slug": p.Slug, "new_limit": limit})
	return p, nil
}

// ---------- 模拟登录 ----------

type ImpersonationResult struct {
	Token       string
	Slug        string
	TargetEmail string
}

// Impersonate 只允许管理员 → 普通用户，签出的令牌带 imp 标记，
// 带标记的会话永远过不了管理员门禁（纵深防御）。
func (s *AdminService) Impersonate(adminID, targetID string) (*ImpersonationResult, error) {
	if targetID == adminID {
		return nil, apperr.BadRequest(apperr.CodeSelfImpersonate, "Cannot impersonate yourself")
	}
	target, err := s.users.FindByID(targetID)
	if err != nil {
		return nil, apperr.Internal("impersonation failed", err)
	}
	if target == nil {
		return nil, apperr.NotFound("User not found")
	}
	if target.Role == domain.RoleAdmin {
		return nil, apperr.Forbidden(apperr.CodeForbidden, "Cannot impersonate another admin account")
	}

	token, err := s.jwter.IssueImpersonated(target.ID, adminID)
	if err != nil {
		return nil, apperr.Internal("impersonation failed", err)
	}
	slug := ""
	if p, err := s.profiles.FirstByOwner(target.ID); err == nil && p != nil {
		slug = p.Slug
	}
	s.writeAudit(adminID, "impersonate", target.ID, map[string]any{"target_email": target.Email})
	return &ImpersonationResult{Token: token, Slug: slug, TargetEmail: target.Email}, nil
}

// ExitImpersonation 退回管理员身份。原管理员可能在模拟期间被降权/
// 停用/删除，必须重新验明正身，不行就拒绝。
func (s *AdminService) ExitImpersonation(impersonatorID string) (token, slug string, err error) {
	if impersonatorID == "" {
		return "", "", apperr.BadRequest(apperr.CodeNotImpersonating, "Not currently in an impersonated session")
	}
	admin, err := s.users.FindByID(impersonatorID)
	if err != nil {
		return "", "", apperr.Internal("exit impersonation failed", err)
	}
	if admin == nil || admin.Role != domain.RoleAdmin || admin.IsSuspended {
		return "", "", apperr.Forbidden(apperr.CodeAdminUnavailable, "Original admin account is no longer valid")
	}
	token, err = s.jwter.Issue(admin.ID)
	if err != nil {
		return "", "", apperr.Internal("exit impersonation failed", err)
	}
	if p, perr := s.profiles.FirstByOwner(admin.ID); perr == nil && p != nil {
		slug = p.Slug
	}
	return token, slug, nil
}

// ---------- 审计 ----------

func (s *AdminService) AuditLog(offset, limit int) ([]domain.AuditWithAdmin, int64, error) {
	rows, total, err := s.audit.List(offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("list audit log failed", err)
	}
	return rows, total, nil
}
