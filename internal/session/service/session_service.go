package service

import (
	"context"
	"errors"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	accountrepo "github.com/finalstore/backend/internal/account/repository"
	commoncrypto "github.com/finalstore/backend/internal/common/crypto"
	commonerrors "github.com/finalstore/backend/internal/common/errors"
	"github.com/finalstore/backend/internal/common/logger"
	commontext "github.com/finalstore/backend/internal/common/text"
)

const PasswordChangedMessage = "Password successfully changed"

// SessionService owns the account session state machine: a credential moves
// between anonymous (no stored refresh token), authenticated (stored token
// live) and signed-out (token cleared). At most one refresh token is live
// per account at any time.
type SessionService struct {
	credentials accountrepo.CredentialRepository
	profiles    accountrepo.ProfileRepository
	txManager   accountrepo.AccountTxManager
	hasher      commoncrypto.PasswordHasher
	issuer      *TokenIssuer
	verifier    *TokenVerifier
	log         *logger.Logger

	revokeOnPasswordChange bool
}

func NewSessionService(
	credentials accountrepo.CredentialRepository,
	profiles accountrepo.ProfileRepository,
	txManager accountrepo.AccountTxManager,
	hasher commoncrypto.PasswordHasher,
	issuer *TokenIssuer,
	verifier *TokenVerifier,
	revokeOnPasswordChange bool,
	log *logger.Logger,
) *SessionService {
	return &SessionService{
		credentials:            credentials,
		profiles:               profiles,
		txManager:              txManager,
		hasher:                 hasher,
		issuer:                 issuer,
		verifier:               verifier,
		revokeOnPasswordChange: revokeOnPasswordChange,
		log:                    log,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
	City     string
	Country  string
}

type ProfileInput struct {
	Name    string
	Phone   string
	Address string
	City    string
	Country string
}

type RegisterResult struct {
	Profile      accountdomain.Profile
	RefreshToken string
}

type SignInResult struct {
	AccessToken  string
	RefreshToken string
	Profile      accountdomain.Profile
}

func (s *SessionService) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateRegistration(input.Email, input.Password, input.Name); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return RegisterResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	refreshToken, _, err := s.issuer.IssueRefreshToken(input.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_token_issue_failed",
		}).Errorf("register failed: refresh token issue error: %v", err)
		return RegisterResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	profile := accountdomain.Profile{
		Email:   input.Email,
		Name:    commontext.CapitalizeWords(input.Name),
		Phone:   commontext.CapitalizeWords(input.Phone),
		Address: commontext.CapitalizeWords(input.Address),
		City:    commontext.CapitalizeWords(input.City),
		Country: commontext.CapitalizeWords(input.Country),
	}

	// The credential and profile rows share one sequence-allocated ID and
	// must land together or not at all.
	err = s.txManager.WithTx(ctx, func(ctx context.Context, tx accountrepo.AccountTx) error {
		id, err := tx.NextAccountID(ctx)
		if err != nil {
			return err
		}

		profile.ID = id

		if err := tx.InsertCredential(ctx, accountdomain.Credential{
			ID:           id,
			Email:        input.Email,
			PasswordHash: hash,
			RefreshToken: refreshToken,
		}); err != nil {
			return err
		}

		return tx.InsertProfile(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, accountrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_exists",
			}).Warn("register failed: email already registered")
			return RegisterResult{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_write_failed",
		}).Errorf("register failed: %v", err)
		return RegisterResult{}, commonerrors.ErrStoreFailure.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":      input.Email,
		"account_id": int64(profile.ID),
		"action":     "register_success",
	}).Info("register success")

	return RegisterResult{
		Profile:      profile,
		RefreshToken: refreshToken,
	}, nil
}

// SignIn deliberately reports a missing account and a wrong password with
// the same error, so callers cannot probe which emails are registered.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "signin_attempt",
	}).Info("sign-in attempt")

	cred, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountrepo.ErrCredentialNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "signin_account_not_found",
			}).Warn("sign-in failed: account not found")
			return SignInResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signin_fetch_failed",
		}).Errorf("sign-in failed: %v", err)
		return SignInResult{}, commonerrors.ErrStoreFailure.WithCause(err)
	}

	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signin_invalid_password",
		}).Warn("sign-in failed: invalid password")
		return SignInResult{}, ErrInvalidCredentials
	}

	accessToken, err := s.issuer.IssueAccessToken(cred.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signin_token_issue_failed",
		}).Errorf("sign-in failed: access token issue error: %v", err)
		return SignInResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	refreshToken, _, err := s.issuer.IssueRefreshToken(cred.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signin_token_issue_failed",
		}).Errorf("sign-in failed: refresh token issue error: %v", err)
		return SignInResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	// Rotation: the stored token is overwritten, which invalidates whatever
	// refresh token was live before this sign-in.
	if err := s.credentials.UpdateRefreshToken(ctx, cred.Email, refreshToken); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signin_rotation_failed",
		}).Errorf("sign-in failed: refresh token rotation error: %v", err)
		return SignInResult{}, commonerrors.ErrStoreFailure.WithCause(err)
	}
	incrementRefreshTokensRotated()

	profile, err := s.profiles.FindByEmail(ctx, cred.Email)
	if err != nil && !errors.Is(err, accountrepo.ErrProfileNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signin_profile_fetch_failed",
		}).Errorf("sign-in failed: profile fetch error: %v", err)
		return SignInResult{}, commonerrors.ErrStoreFailure.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":      cred.Email,
		"account_id": int64(cred.ID),
		"action":     "signin_success",
	}).Info("sign-in success")

	return SignInResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profile,
	}, nil
}

// SignOut clears the stored refresh token. Calling it for an already
// signed-out or unknown account is not an error.
func (s *SessionService) SignOut(ctx context.Context, email string) error {
	if err := s.credentials.ClearRefreshToken(ctx, email); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signout_failed",
		}).Errorf("sign-out failed: %v", err)
		return commonerrors.ErrStoreFailure.WithCause(err)
	}

	incrementRefreshTokensRevoked()
	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "signout_success",
	}).Info("sign-out success")
	return nil
}

// Refresh redeems a refresh token for a new access token. The refresh token
// itself is not rotated here; it stays valid until the next sign-in replaces
// it or sign-out clears it.
func (s *SessionService) Refresh(ctx context.Context, presentedToken string) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"action": "refresh_attempt",
	}).Info("refresh attempt")

	if presentedToken == "" {
		return "", ErrInvalidToken
	}

	cred, err := s.credentials.FindByRefreshToken(ctx, presentedToken)
	if err != nil {
		if errors.Is(err, accountrepo.ErrCredentialNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"action": "refresh_token_unknown",
			}).Warn("refresh failed: no account holds this token")
			return "", ErrInvalidToken
		}
		s.log.WithFields(ctx, logger.Fields{
			"action": "refresh_lookup_failed",
		}).Errorf("refresh lookup failed: %v", err)
		return "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	claims, err := s.verifier.VerifyRefresh(presentedToken)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"account_id": int64(cred.ID),
			"action":     "refresh_token_invalid",
		}).Warnf("refresh failed: %v", err)
		return "", ErrInvalidToken
	}

	if claims.Email != cred.Email {
		s.log.WithFields(ctx, logger.Fields{
			"account_id": int64(cred.ID),
			"action":     "refresh_claim_mismatch",
		}).Warn("refresh failed: token claim does not match credential")
		return "", ErrInvalidToken
	}

	accessToken, err := s.issuer.IssueAccessToken(cred.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"account_id": int64(cred.ID),
			"action":     "refresh_issue_failed",
		}).Errorf("refresh failed: access token issue error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	incrementRefreshTokensUsed()
	s.log.WithFields(ctx, logger.Fields{
		"account_id": int64(cred.ID),
		"action":     "refresh_success",
	}).Info("refresh success")

	return accessToken, nil
}

func (s *SessionService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "change_password_attempt",
	}).Info("change password attempt")

	if err := validatePasswordChange(newPassword); err != nil {
		return "", err
	}

	cred, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountrepo.ErrCredentialNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "change_password_account_not_found",
			}).Warn("change password failed: account not found")
			return "", ErrInvalidCredentials
		}
		return "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	if err := s.hasher.Compare(cred.PasswordHash, oldPassword); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "change_password_mismatch",
		}).Warn("change password failed: previous password incorrect")
		return "", ErrPreviousPasswordIncorrect
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "change_password_hash_failed",
		}).Errorf("change password failed: hash error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	if err := s.credentials.UpdatePasswordHash(ctx, email, hash); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "change_password_update_failed",
		}).Errorf("change password failed: %v", err)
		return "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	if s.revokeOnPasswordChange {
		if err := s.credentials.ClearRefreshToken(ctx, email); err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "change_password_revoke_failed",
			}).Errorf("change password: failed to revoke refresh token: %v", err)
			return "", commonerrors.ErrStoreFailure.WithCause(err)
		}
		incrementRefreshTokensRevoked()
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "change_password_success",
	}).Info("change password success")

	return PasswordChangedMessage, nil
}

func (s *SessionService) EditProfile(ctx context.Context, prevEmail, newEmail string, input ProfileInput) (accountdomain.Profile, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":     prevEmail,
		"new_email": newEmail,
		"action":    "edit_profile_attempt",
	}).Info("edit profile attempt")

	if newEmail == "" {
		return accountdomain.Profile{}, ErrValidationEmailRequired
	}
	if input.Name == "" {
		return accountdomain.Profile{}, ErrValidationNameRequired
	}

	updated := accountdomain.Profile{
		Email:   newEmail,
		Name:    commontext.CapitalizeWords(input.Name),
		Phone:   commontext.CapitalizeWords(input.Phone),
		Address: commontext.CapitalizeWords(input.Address),
		City:    commontext.CapitalizeWords(input.City),
		Country: commontext.CapitalizeWords(input.Country),
	}

	// The email key moves across both tables in one transaction; a partial
	// move would orphan the profile from its credential.
	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx accountrepo.AccountTx) error {
		if err := tx.UpdateCredentialEmail(ctx, prevEmail, newEmail); err != nil {
			return err
		}

		result, err := tx.UpdateProfile(ctx, prevEmail, updated)
		if err != nil {
			return err
		}
		updated = result
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, accountrepo.ErrEmailAlreadyExists):
			s.log.WithFields(ctx, logger.Fields{
				"email":     prevEmail,
				"new_email": newEmail,
				"action":    "edit_profile_email_taken",
			}).Warn("edit profile failed: new email already registered")
			return accountdomain.Profile{}, ErrEmailTaken
		case errors.Is(err, accountrepo.ErrCredentialNotFound),
			errors.Is(err, accountrepo.ErrProfileNotFound):
			s.log.WithFields(ctx, logger.Fields{
				"email":  prevEmail,
				"action": "edit_profile_not_found",
			}).Warn("edit profile failed: account not found")
			return accountdomain.Profile{}, commonerrors.ErrAccountNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  prevEmail,
			"action": "edit_profile_write_failed",
		}).Errorf("edit profile failed: %v", err)
		return accountdomain.Profile{}, commonerrors.ErrStoreFailure.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":      updated.Email,
		"account_id": int64(updated.ID),
		"action":     "edit_profile_success",
	}).Info("edit profile success")

	return updated, nil
}

func (s *SessionService) GetProfile(ctx context.Context, email string) (accountdomain.Profile, error) {
	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountrepo.ErrProfileNotFound) {
			return accountdomain.Profile{}, commonerrors.ErrAccountNotFound
		}
		return accountdomain.Profile{}, commonerrors.ErrStoreFailure.WithCause(err)
	}
	return profile, nil
}
