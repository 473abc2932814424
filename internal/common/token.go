package common

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/calyptra/storefront/internal/common/constants"
	inErrors "github.com/calyptra/storefront/internal/common/errors"
	"github.com/calyptra/storefront/internal/log"
)

// CreateSessionToken mints an anonymous cart-session token. The subject
// is the session id, which doubles as the upstream cart handle.
func CreateSessionToken(c context.Context, secretKey string) (string, uuid.UUID, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CreateSessionToken").
		Logger()

	sessionId := uuid.New()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionId.String(),
		Audience:  jwt.ClaimStrings{constants.AudienceStorefront},
		Issuer:    constants.AppStorefrontService,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(30 * 24 * time.Hour)),
	}

	logger = logger.With().Str(log.KeySessionID, sessionId.String()).Logger()
	logger.Info().Msg("signing session token")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(secretKey))
	if err != nil {
		err = fmt.Errorf("failed signing session token with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return "", uuid.Nil, err
	}
	logger.Info().Msg("signed session token")

	return token, sessionId, nil
}

// VerifySessionToken parses and validates a session token and returns
// the session id carried in its subject.
func VerifySessionToken(c context.Context, token string, secretKey string) (uuid.UUID, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifySessionToken").
		Logger()

	claims := jwt.RegisteredClaims{}

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	jwtToken, err := jwt.ParseWithClaims(token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithAudience(constants.AudienceStorefront),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppStorefrontService),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	logger.Info().Msg("parsed claims")

	logger = logger.With().Str(log.KeyProcess, "validating token").Logger()
	logger.Info().Msg("validating token")
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return uuid.Nil, inErrors.ErrTokenInvalid
	}
	sessionId, err := uuid.Parse(claims.Subject)
	if err != nil {
		err = fmt.Errorf("failed parsing session subject with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	logger.Info().Msg("validated token")

	return sessionId, nil
}
