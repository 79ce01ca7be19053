package session

import (
	"testing"
	"time"

	"github.com/finalstore/backend/internal/common/clock"
	"github.com/finalstore/backend/internal/common/constants"
	"github.com/finalstore/backend/internal/common/logger"
	"github.com/finalstore/backend/internal/session/service"
)

const (
	testAccessSecret  = "access-secret-0123456789-0123456789-abc"
	testRefreshSecret = "refresh-secret-0123456789-0123456789-xyz"
)

type sessionFixture struct {
	svc         *service.SessionService
	credentials *mockCredentialRepo
	profiles    *mockProfileRepo
	tx          *mockAccountTx
	txManager   *mockTxManager
	hasher      *mockHasher
	idGenerator *mockIDGenerator
	clock       *clock.MockClock
	issuer      *service.TokenIssuer
	verifier    *service.TokenVerifier
}

func setupSessionService(t *testing.T, revokeOnPasswordChange bool) *sessionFixture {
	_ = t
	credentials := &mockCredentialRepo{}
	profiles := &mockProfileRepo{}
	tx := &mockAccountTx{}
	txManager := &mockTxManager{tx: tx}
	hasher := &mockHasher{}
	idGenerator := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	log, _ := logger.New("", "test", "info")

	issuer := service.NewTokenIssuer(
		testAccessSecret,
		testRefreshSecret,
		idGenerator,
		constants.DefaultAccessTokenTTL,
		constants.DefaultRefreshTokenTTL,
		mockClock,
	)
	verifier := service.NewTokenVerifier(testAccessSecret, testRefreshSecret, mockClock)

	svc := service.NewSessionService(
		credentials,
		profiles,
		txManager,
		hasher,
		issuer,
		verifier,
		revokeOnPasswordChange,
		log,
	)

	return &sessionFixture{
		svc:         svc,
		credentials: credentials,
		profiles:    profiles,
		tx:          tx,
		txManager:   txManager,
		hasher:      hasher,
		idGenerator: idGenerator,
		clock:       mockClock,
		issuer:      issuer,
		verifier:    verifier,
	}
}
