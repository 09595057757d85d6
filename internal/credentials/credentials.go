// Package credentials generates throwaway signup credentials.
package credentials

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	DefaultEmailPrefix    = "user"
	DefaultEmailDomain    = "examplemail.com"
	DefaultUsernamePrefix = "user_"

	usernameSuffixLen = 6
	passwordLen       = 12

	lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	passwordChars    = lowercaseLetters + "ABCDEFGHIJKLMNOPQRSTUVWXYZ" + "0123456789"

	emailNumberMin = 1000
	emailNumberMax = 9999
)

// Credentials is the set of values typed into the signup forms of a single run.
type Credentials struct {
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Config defines the fixed parts of the generated credentials.
type Config struct {
	EmailPrefix    string `yaml:"email_prefix" env:"GOSIGNUP_EMAIL_PREFIX"`
	EmailDomain    string `yaml:"email_domain" env:"GOSIGNUP_EMAIL_DOMAIN"`
	UsernamePrefix string `yaml:"username_prefix" env:"GOSIGNUP_USERNAME_PREFIX"`
}

// A Generator produces fresh credentials. The email address is purely
// illustrative, it is not a mailbox anyone can read.
type Generator struct {
	EmailPrefix    string
	EmailDomain    string
	UsernamePrefix string
	rnd            *rand.Rand
}

// NewGenerator returns a Generator for the given config. Empty values
// fall back to the defaults.
func NewGenerator(c *Config) *Generator {
	g := &Generator{
		EmailPrefix:    DefaultEmailPrefix,
		EmailDomain:    DefaultEmailDomain,
		UsernamePrefix: DefaultUsernamePrefix,
	}
	if c == nil {
		return g
	}
	if c.EmailPrefix != "" {
		g.EmailPrefix = c.EmailPrefix
	}
	if c.EmailDomain != "" {
		g.EmailDomain = c.EmailDomain
	}
	if c.UsernamePrefix != "" {
		g.UsernamePrefix = c.UsernamePrefix
	}
	return g
}

// WithSeed makes the generator deterministic.
func (g *Generator) WithSeed(seed uint64) *Generator {
	g.rnd = rand.New(rand.NewPCG(seed, seed))
	return g
}

func (g *Generator) intN(n int) int {
	if g.rnd != nil {
		return g.rnd.IntN(n)
	}
	return rand.IntN(n)
}

func (g *Generator) randomString(alphabet string, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(alphabet[g.intN(len(alphabet))])
	}
	return sb.String()
}

// Generate returns a new set of credentials.
func (g *Generator) Generate() Credentials {
	nr := emailNumberMin + g.intN(emailNumberMax-emailNumberMin+1)
	return Credentials{
		Email:    fmt.Sprintf("%s%d@%s", g.EmailPrefix, nr, g.EmailDomain),
		Username: g.UsernamePrefix + g.randomString(lowercaseLetters, usernameSuffixLen),
		Password: g.randomString(passwordChars, passwordLen),
	}
}
