package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerifierConf - .auth.json
type VerifierConf struct {
	PublicKeyPath string `json:"public_key_path"` // single key, used when the token has no kid
	KeyDir        string `json:"key_dir"`         // <kid>_public.pem files
	Issuer        string `json:"issuer"`
	Audience      string `json:"audience"`
	LeewaySec     int    `json:"leeway_sec"`
}

var ErrUnknownKey = errors.New("sec: no verification key for token")

// Verifier checks RS256 bearer tokens
type Verifier struct {
	keys     map[string]*rsa.PublicKey
	fallback *rsa.PublicKey
	opts     []jwt.ParserOption
}

func NewVerifier(conf VerifierConf) (*Verifier, error) {
	var (
		keys     map[string]*rsa.PublicKey
		fallback *rsa.PublicKey
		err      error
	)
	if conf.KeyDir != "" {
		jwks, err := LoadPublicPEMKeysAsJWKS(conf.KeyDir)
		if err != nil {
			return nil, err
		}
		if keys, err = jwks.PublicKeys(); err != nil {
			return nil, err
		}
	}
	if conf.PublicKeyPath != "" {
		if fallback, err = LoadLocalPublicPEMKey(conf.PublicKeyPath); err != nil {
			return nil, err
		}
	}
	if len(keys) == 0 && fallback == nil {
		return nil, errors.New("sec: auth configured without any public key")
	}
	return NewVerifierWithKeys(keys, fallback, conf.Issuer, conf.Audience, time.Duration(conf.LeewaySec)*time.Second), nil
}

func NewVerifierWithKeys(keys map[string]*rsa.PublicKey, fallback *rsa.PublicKey, issuer string, audience string, leeway time.Duration) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &Verifier{keys: keys, fallback: fallback, opts: opts}
}

func (v *Verifier) keyFor(token *jwt.Token) (any, error) {
	if kid, ok := token.Header["kid"].(string); ok && kid != "" {
		if key, ok := v.keys[kid]; ok {
			return key, nil
		}
		if v.fallback == nil {
			return nil, fmt.Errorf("%w: kid %q", ErrUnknownKey, kid)
		}
	}
	if v.fallback == nil {
		return nil, ErrUnknownKey
	}
	return v.fallback, nil
}

// Verify parses a signed token and returns its claims when the signature,
// expiry, issuer and audience all check out
func (v *Verifier) Verify(signedToken string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(signedToken, v.keyFor, v.opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SignRS256 issues a token for sub valid for ttl
func SignRS256(iss string, sub string, aud string, ttl time.Duration, privateKey *rsa.PrivateKey, kid string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if iss != "" {
		claims["iss"] = iss
	}
	if aud != "" {
		claims["aud"] = aud
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	return token.SignedString(privateKey)
}
