package transparent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	for _, env := range []Environment{Sandbox, Production} {
		site := StaticSite{
			SiteSubdomain:   "testtest",
			SiteEnvironment: env,
			SiteBaseURL:     "https://api-" + string(env) + ".recurly.com",
		}
		base := site.BaseURL()

		tests := []struct {
			action Action
			want   string
		}{
			{CreateSubscription, base + "/transparent/testtest/subscription"},
			{UpdateBilling, base + "/transparent/testtest/billing_info"},
			{CreateTransaction, base + "/transparent/testtest/transaction"},
		}

		for _, tt := range tests {
			t.Run(string(env)+"/"+tt.action.String(), func(t *testing.T) {
				got, err := URL(tt.action, site)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestURL_DefaultAction(t *testing.T) {
	site := StaticSite{SiteSubdomain: "acme", SiteBaseURL: "https://api-sandbox.recurly.com/"}

	var zero Action
	got, err := URL(zero, site)
	require.NoError(t, err)
	assert.Equal(t, "https://api-sandbox.recurly.com/transparent/acme/subscription", got)
	assert.Equal(t, CreateSubscription, DefaultAction)
}

func TestURL_UnknownAction(t *testing.T) {
	_, err := URL(Action(42), StaticSite{SiteSubdomain: "acme"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "", want: CreateSubscription},
		{in: "subscription", want: CreateSubscription},
		{in: "billing_info", want: UpdateBilling},
		{in: "UpdateBilling", want: UpdateBilling},
		{in: "transaction", want: CreateTransaction},
		{in: "createtransaction", want: CreateTransaction},
		{in: "refund", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("Production")
	require.NoError(t, err)
	assert.Equal(t, Production, env)

	env, err = ParseEnvironment("sandbox")
	require.NoError(t, err)
	assert.Equal(t, Sandbox, env)

	_, err = ParseEnvironment("staging")
	assert.Equal(t, KindConfiguration, KindOf(err))
}
