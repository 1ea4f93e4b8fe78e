package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
)

type KioskTokenServiceTestSuite struct {
	suite.Suite
	store *memStore
	clock *fixedClock
	svc   portssvc.KioskTokenSvc
}

func (suite *KioskTokenServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	suite.store.memberships = []domain.Membership{
		{WorkerID: testAdmin, CompanyID: testCompanyID, Role: domain.RoleAdmin},
		{WorkerID: testWorker, CompanyID: testCompanyID, Role: domain.RoleWorker},
	}
	suite.clock = &fixedClock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	suite.svc = NewKioskTokenService(suite.store, suite.store, suite.clock)
}

func TestKioskTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(KioskTokenServiceTestSuite))
}

func (suite *KioskTokenServiceTestSuite) TestCreateAndValidate() {
	ctx := context.Background()
	raw, token, err := suite.svc.CreateKioskToken(ctx, testAdmin, testCompanyID, "  Front desk ", nil)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(raw, KioskTokenPrefix+token.TokenID+"."))
	suite.Equal("Front desk", token.Name)
	suite.NotContains(token.SecretHash, strings.TrimPrefix(raw, KioskTokenPrefix+token.TokenID+"."))

	suite.clock.advance(time.Minute)
	validated, err := suite.svc.ValidateKioskToken(ctx, raw)
	suite.Require().NoError(err)
	suite.Equal(testCompanyID, validated.CompanyID)

	stored := suite.store.tokens[token.TokenID]
	suite.Require().NotNil(stored.LastUsedAt)
	suite.Equal(suite.clock.Now(), *stored.LastUsedAt)

	tokens, err := suite.svc.ListKioskTokens(ctx, testAdmin, testCompanyID)
	suite.Require().NoError(err)
	suite.Len(tokens, 1)
}

func (suite *KioskTokenServiceTestSuite) TestOnlyAdministratorsManageTokens() {
	ctx := context.Background()
	_, _, err := suite.svc.CreateKioskToken(ctx, testWorker, testCompanyID, "Front desk", nil)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, _, err = suite.svc.CreateKioskToken(ctx, "outsider", testCompanyID, "Front desk", nil)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.svc.ListKioskTokens(ctx, testWorker, testCompanyID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, _, err = suite.svc.CreateKioskToken(ctx, testAdmin, testCompanyID, "   ", nil)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *KioskTokenServiceTestSuite) TestRevokedTokenIsRejected() {
	ctx := context.Background()
	raw, token, err := suite.svc.CreateKioskToken(ctx, testAdmin, testCompanyID, "Gate", nil)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.svc.RevokeKioskToken(ctx, testAdmin, testCompanyID, token.TokenID))
	_, err = suite.svc.ValidateKioskToken(ctx, raw)
	suite.Error(err)

	err = suite.svc.RevokeKioskToken(ctx, testAdmin, testCompanyID, token.TokenID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *KioskTokenServiceTestSuite) TestExpiredTokenIsRejected() {
	ctx := context.Background()
	ttl := time.Hour
	raw, _, err := suite.svc.CreateKioskToken(ctx, testAdmin, testCompanyID, "Gate", &ttl)
	suite.Require().NoError(err)

	suite.clock.advance(59 * time.Minute)
	_, err = suite.svc.ValidateKioskToken(ctx, raw)
	suite.NoError(err)

	suite.clock.advance(time.Minute)
	_, err = suite.svc.ValidateKioskToken(ctx, raw)
	suite.Error(err)
}

func (suite *KioskTokenServiceTestSuite) TestWrongSecretIsRejected() {
	ctx := context.Background()
	_, token, err := suite.svc.CreateKioskToken(ctx, testAdmin, testCompanyID, "Gate", nil)
	suite.Require().NoError(err)

	_, err = suite.svc.ValidateKioskToken(ctx, KioskTokenPrefix+token.TokenID+".not-the-secret")
	suite.Error(err)
	suite.Nil(suite.store.tokens[token.TokenID].LastUsedAt)
}

func TestSplitKioskToken(t *testing.T) {
	id := "0b7f5c1e-2d9a-4c3b-8e6f-1a2b3c4d5e6f"
	tests := []struct {
		raw    string
		ok     bool
		secret string
	}{
		{raw: KioskTokenPrefix + id + ".s3cret", ok: true, secret: "s3cret"},
		{raw: " " + KioskTokenPrefix + id + ".a.b ", ok: true, secret: "a.b"},
		{raw: id + ".s3cret"},
		{raw: KioskTokenPrefix + id},
		{raw: KioskTokenPrefix + id + "."},
		{raw: KioskTokenPrefix + "not-a-uuid.s3cret"},
		{raw: ""},
	}
	for _, tt := range tests {
		gotID, secret, ok := splitKioskToken(tt.raw)
		if !tt.ok {
			if ok {
				t.Errorf("splitKioskToken(%q) accepted a malformed token", tt.raw)
			}
			continue
		}
		if !ok || gotID != id || secret != tt.secret {
			t.Errorf("splitKioskToken(%q) = %q, %q, %v", tt.raw, gotID, secret, ok)
		}
	}
}
