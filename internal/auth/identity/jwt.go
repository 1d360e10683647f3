package identity

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// JWT verifies bearer JWTs signed with either a shared HS256 secret or an
// RS256 key pair. The subject is the "sub" claim.
type JWT struct {
	secret    []byte
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

type JWTOptions struct {
	Secret        string
	PublicKeyPath string
	Issuer        string
	Audience      string
}

func NewJWT(opts JWTOptions) (*JWT, error) {
	j := &JWT{}

	parserOpts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}

	switch {
	case opts.PublicKeyPath != "":
		pem, err := os.ReadFile(opts.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read jwt public key: %w", err)
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
		if err != nil {
			return nil, fmt.Errorf("parse jwt public key: %w", err)
		}
		j.publicKey = key
		parserOpts = append(parserOpts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	case opts.Secret != "":
		j.secret = []byte(opts.Secret)
		parserOpts = append(parserOpts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	default:
		return nil, fmt.Errorf("jwt identity needs a secret or a public key")
	}

	j.parser = jwt.NewParser(parserOpts...)
	return j, nil
}

func (j *JWT) Verify(r *http.Request) (string, error) {
	raw := BearerToken(r)
	if raw == "" {
		return "", unauthenticated("missing authorization token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := j.parser.ParseWithClaims(raw, claims, j.keyFunc)
	if err != nil || !token.Valid {
		return "", unauthenticated("invalid token")
	}
	if claims.Subject == "" {
		return "", unauthenticated("token has no subject")
	}
	return claims.Subject, nil
}

func (j *JWT) keyFunc(*jwt.Token) (interface{}, error) {
	if j.publicKey != nil {
		return j.publicKey, nil
	}
	return j.secret, nil
}
