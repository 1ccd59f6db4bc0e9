package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx    map[string][]*net.MX
	hosts map[string][]string
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if v, ok := f.mx[name]; ok {
		return v, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if v, ok := f.hosts[host]; ok {
		return v, nil
	}
	return nil, errors.New("no such host")
}

func TestIsEmailSyntaxValid(t *testing.T) {
	for email, want := range map[string]bool{
		"ana@example.com":          true,
		"ana.lima+tag@mail.com.br": true,
		"ana@localhost":            false,
		"Ana <ana@example.com>":    false,
		"ana":                      false,
		"@example.com":             false,
	} {
		assert.Equal(t, want, IsEmailSyntaxValid(email), email)
	}
}

func TestIsEmailDomainValid(t *testing.T) {
	r := fakeResolver{
		mx:    map[string][]*net.MX{"example.com": {{Host: "mx.example.com.", Pref: 10}}},
		hosts: map[string][]string{"hostonly.com": {"10.0.0.1"}},
	}
	ctx := context.Background()

	assert.True(t, IsEmailDomainValid(ctx, r, "ana@example.com"))
	assert.True(t, IsEmailDomainValid(ctx, r, "ana@hostonly.com"))
	assert.False(t, IsEmailDomainValid(ctx, r, "ana@nowhere.invalid"))
	assert.False(t, IsEmailDomainValid(ctx, r, "ana@"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
