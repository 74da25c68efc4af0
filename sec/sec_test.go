package sec

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func TestCipher_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	c, err := NewXChaCha20Poly1305CipherBase64(key)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := c.EncryptEncode([]byte("%PDF-1.3 payload"))
	if err != nil {
		t.Fatal(err)
	}
	dec, err := c.DecodeDecrypt(enc)
	if err != nil {
		t.Fatal(err)
	}
	if string(dec) != "%PDF-1.3 payload" {
		t.Errorf("got %q", dec)
	}

	sealed, _ := c.Seal([]byte("abc"))
	sealed[len(sealed)-1] ^= 0xff
	if _, err := c.Open(sealed); err == nil {
		t.Error("tampered ciphertext opened")
	}
	if _, err := c.Open([]byte{1, 2}); err == nil {
		t.Error("short ciphertext opened")
	}
}

func TestCipher_FreshNonce(t *testing.T) {
	c, _ := NewXChaCha20Poly1305CipherBase64(make([]byte, 32))
	a, _ := c.Seal([]byte("same"))
	b, _ := c.Seal([]byte("same"))
	if bytes.Equal(a, b) {
		t.Error("two seals produced identical output")
	}
}

func TestCipher_BadKeySize(t *testing.T) {
	if _, err := NewXChaCha20Poly1305CipherBase64([]byte("short")); err == nil {
		t.Error("expected error")
	}
}

func TestKeyFromConfig(t *testing.T) {
	raw := "0123456789abcdef0123456789abcdef"
	if k, err := KeyFromConfig(raw); err != nil || string(k) != raw {
		t.Errorf("raw: %q %v", k, err)
	}
	b := bytes.Repeat([]byte{0xfe}, 32)
	for _, s := range []string{
		base64.StdEncoding.EncodeToString(b),
		base64.RawURLEncoding.EncodeToString(b),
	} {
		k, err := KeyFromConfig(s)
		if err != nil || !bytes.Equal(k, b) {
			t.Errorf("%s: %v", s, err)
		}
	}
	if _, err := KeyFromConfig("nope"); err == nil {
		t.Error("expected error")
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def": "abc.def",
		"Bearer ":        "",
		"bearer abc":     "",
		"":               "",
	}
	for in, want := range cases {
		if got := ExtractBearerToken(in); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}

func TestVerifier(t *testing.T) {
	key := testKey(t)
	v := NewVerifierWithKeys(map[string]*rsa.PublicKey{"k1": &key.PublicKey}, nil, "issuer", "invoices", 0)

	token, err := SignRS256("issuer", "svc-a", "invoices", time.Minute, key, "k1")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := v.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims["sub"] != "svc-a" {
		t.Errorf("sub = %v", claims["sub"])
	}

	t.Run("wrong audience", func(t *testing.T) {
		tok, _ := SignRS256("issuer", "svc-a", "other", time.Minute, key, "k1")
		if _, err := v.Verify(tok); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("expired", func(t *testing.T) {
		tok, _ := SignRS256("issuer", "svc-a", "invoices", -time.Minute, key, "k1")
		if _, err := v.Verify(tok); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("unknown kid", func(t *testing.T) {
		tok, _ := SignRS256("issuer", "svc-a", "invoices", time.Minute, key, "k2")
		if _, err := v.Verify(tok); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("err = %v", err)
		}
	})
	t.Run("other key", func(t *testing.T) {
		tok, _ := SignRS256("issuer", "svc-a", "invoices", time.Minute, testKey(t), "k1")
		if _, err := v.Verify(tok); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("garbage", func(t *testing.T) {
		if _, err := v.Verify("not.a.token"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestNewVerifier_FromFiles(t *testing.T) {
	dir := t.TempDir()
	key := testKey(t)
	if err := SavePublicPEMKeyLocal(filepath.Join(dir, "main_public.pem"), &key.PublicKey); err != nil {
		t.Fatal(err)
	}
	if err := SavePrivatePEMKeyLocal(filepath.Join(dir, "main_private.pem"), key); err != nil {
		t.Fatal(err)
	}
	priv, err := LoadLocalPrivatePEMKey(filepath.Join(dir, "main_private.pem"))
	if err != nil {
		t.Fatal(err)
	}

	v, err := NewVerifier(VerifierConf{KeyDir: dir, PublicKeyPath: filepath.Join(dir, "main_public.pem")})
	if err != nil {
		t.Fatal(err)
	}
	for _, kid := range []string{"main", ""} {
		tok, err := SignRS256("", "cli", "", time.Minute, priv, kid)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := v.Verify(tok); err != nil {
			t.Errorf("kid %q: %v", kid, err)
		}
	}

	if _, err := NewVerifier(VerifierConf{}); err == nil {
		t.Error("expected error without keys")
	}
}

func TestGenerateKeyID(t *testing.T) {
	key := testKey(t)
	id, err := GenerateKeyID(&key.PublicKey, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 16 || strings.Trim(id, "0123456789abcdef") != "" {
		t.Errorf("id = %q", id)
	}
	if _, err := GenerateKeyID(&key.PublicKey, 4); err == nil {
		t.Error("expected error")
	}
}
