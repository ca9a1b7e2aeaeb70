package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardlink/internal/domain"
)

func TestProfileCreate(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, nil)

	p, err := svc.Create("u1", &ProfileInput{BusinessName: "Luna Café Bakery"})
	require.NoError(t, err)
	assert.Equal(t, "luna-cafe-bakery", p.Slug)
	assert.Equal(t, "Luna Café Bakery", p.BusinessName)
	assert.Equal(t, domain.DefaultCardLimit, p.CardLimit)

	// 同名直建：slug 冲突时追加随机后缀
	p2, err := svc.Create("u2", &ProfileInput{BusinessName: "Luna Café Bakery"})
	require.NoError(t, err)
	assert.NotEqual(t, p.Slug, p2.Slug)
	assert.Contains(t, p2.Slug, "luna-cafe-bakery-")

	_, err = svc.Create("u1", &ProfileInput{BusinessName: "   "})
	assertCode(t, err, "MISSING_NAME", 400)
}

func TestProfileGetPublic(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	p, err := svc.Create("u1", &ProfileInput{
		BusinessName: "Luna Cafe",
		Socials:      json.RawMessage(`[{"type":"instagram","url":"https://instagram.com/luna"}]`),
	})
	require.NoError(t, err)

	v, err := svc.GetPublic(ctx, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Luna Cafe", v.BusinessName)
	assert.JSONEq(t, `[{"type":"instagram","url":"https://instagram.com/luna"}]`, string(v.Socials))

	_, err = svc.GetPublic(ctx, "no-such-slug")
	assertCode(t, err, "NOT_FOUND", 404)

	_, err = svc.GetPublic(ctx, "Bad Slug!")
	assertCode(t, err, "BAD_SLUG", 400)
}

func TestProfileUpdate(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	p, err := svc.Create("u1", &ProfileInput{BusinessName: "Luna Cafe"})
	require.NoError(t, err)

	up, err := svc.Update(ctx, p.Slug, "u1", &ProfileInput{
		BusinessName: "Luna Cafe & Bakery",
		Theme:        "sunset",
		Cards:        json.RawMessage(`[{"type":"link"},{"type":"poll"}]`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Luna Cafe & Bakery", up.BusinessName)
	assert.Equal(t, "sunset", up.Theme)
	// slug 不随名称变
	assert.Equal(t, p.Slug, up.Slug)

	_, err = svc.Update(ctx, p.Slug, "u2", &ProfileInput{BusinessName: "x"})
	assertCode(t, err, "FORBIDDEN", 403)
}

func TestProfileUpdateCardLimit(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	p, err := svc.Create("u1", &ProfileInput{BusinessName: "Luna Cafe"})
	require.NoError(t, err)

	cards := make([]json.RawMessage, 0, domain.DefaultCardLimit+1)
	for i := 0; i <= domain.DefaultCardLimit; i++ {
		cards = append(cards, json.RawMessage(`{"type":"link"}`))
	}
	over, err := json.Marshal(cards)
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.Slug, "u1", &ProfileInput{BusinessName: "Luna Cafe", Cards: over})
	assertCode(t, err, "CARD_LIMIT_EXCEEDED", 400)

	// 上限内通过
	under, err := json.Marshal(cards[:domain.DefaultCardLimit])
	require.NoError(t, err)
	_, err = svc.Update(ctx, p.Slug, "u1", &ProfileInput{BusinessName: "Luna Cafe", Cards: under})
	require.NoError(t, err)
}

func TestProfileDelete(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	p, err := svc.Create("u1", &ProfileInput{BusinessName: "Luna Cafe"})
	require.NoError(t, err)

	assertCode(t, svc.Delete(ctx, p.Slug, "u2"), "FORBIDDEN", 403)
	require.NoError(t, svc.Delete(ctx, p.Slug, "u1"))
	assertCode(t, svc.Delete(ctx, p.Slug, "u1"), "NOT_FOUND", 404)
}
