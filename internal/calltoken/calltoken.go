// Package calltoken signs the tokens that bind a provider call back to its
// campaign enrollment. Providers echo the token in webhook metadata.
package calltoken

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer     = "switchyard"
	DefaultTTL = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid call token")

type Binding struct {
	OrganizationID int64
	CampaignID     int64
	ContactID      int64
	CallID         int64
}

type claims struct {
	OrganizationID string `json:"org"`
	CampaignID     string `json:"cmp,omitempty"`
	ContactID      string `json:"cnt"`
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of s that reads time from now.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Signer) Sign(b Binding) (string, error) {
	now := s.now()
	c := claims{
		OrganizationID: strconv.FormatInt(b.OrganizationID, 10),
		ContactID:      strconv.FormatInt(b.ContactID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(b.CallID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if b.CampaignID != 0 {
		c.CampaignID = strconv.FormatInt(b.CampaignID, 10)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing call token: %w", err)
	}
	return token, nil
}

func (s *Signer) Verify(token string) (*Binding, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	b := &Binding{}
	if b.OrganizationID, err = strconv.ParseInt(c.OrganizationID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: organization", ErrInvalidToken)
	}
	if b.ContactID, err = strconv.ParseInt(c.ContactID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: contact", ErrInvalidToken)
	}
	if b.CallID, err = strconv.ParseInt(c.Subject, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: call", ErrInvalidToken)
	}
	if c.CampaignID != "" {
		if b.CampaignID, err = strconv.ParseInt(c.CampaignID, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: campaign", ErrInvalidToken)
		}
	}
	return b, nil
}
