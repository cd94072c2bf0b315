package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSignature = errors.New("invalid or expired signed URL")

type objectClaims struct {
	Bucket string `json:"bkt"`
	Key    string `json:"key"`
	jwt.RegisteredClaims
}

// URLSigner issues short-lived tokens granting read access to one object of a private bucket.
type URLSigner struct {
	secret  []byte
	ttl     time.Duration
	baseURL string
	now     func() time.Time
}

func NewURLSigner(secret string, ttl time.Duration, baseURL string) *URLSigner {
	return &URLSigner{
		secret:  []byte(secret),
		ttl:     ttl,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Sign returns a token for bucket/key valid for the signer's TTL.
func (s *URLSigner) Sign(bucket, key string) (string, error) {
	now := s.now()
	claims := objectClaims{
		Bucket: bucket,
		Key:    key,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign object URL: %w", err)
	}
	return token, nil
}

// SignedURL returns the absolute URL serving bucket/key through the signed route.
func (s *URLSigner) SignedURL(bucket, key string) (string, error) {
	token, err := s.Sign(bucket, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/files/signed/%s", s.baseURL, token), nil
}

// Verify checks a token and returns the bucket and key it grants.
func (s *URLSigner) Verify(token string) (string, string, error) {
	claims := &objectClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", "", ErrInvalidSignature
	}
	return claims.Bucket, claims.Key, nil
}
