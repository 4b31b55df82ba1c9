package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirnagrma/console/internal/api/validation"
)

func TestValidateCreateAgentRequest(t *testing.T) {
	cases := []struct {
		name   string
		req    validation.CreateAgentRequest
		fields []string
	}{
		{"valid", validation.CreateAgentRequest{Username: "agent_x", Password: "secret1"}, nil},
		{"missing username", validation.CreateAgentRequest{Password: "secret1"}, []string{"username"}},
		{"whitespace username", validation.CreateAgentRequest{Username: "   ", Password: "secret1"}, []string{"username"}},
		{"long username", validation.CreateAgentRequest{Username: strings.Repeat("a", 65), Password: "secret1"}, []string{"username"}},
		{"missing password", validation.CreateAgentRequest{Username: "agent_x"}, []string{"password"}},
		{"short password", validation.CreateAgentRequest{Username: "agent_x", Password: "12345"}, []string{"password"}},
		{"both invalid", validation.CreateAgentRequest{}, []string{"username", "password"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validation.ValidateCreateAgentRequest(tc.req)

			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tc.fields, got)
		})
	}
}

func TestValidateUpdateAgentRequest_EmptyPasswordAllowed(t *testing.T) {
	errs := validation.ValidateUpdateAgentRequest(validation.UpdateAgentRequest{Username: "agent_x"})
	assert.Empty(t, errs, "empty password means keep the current one")

	errs = validation.ValidateUpdateAgentRequest(validation.UpdateAgentRequest{Username: "agent_x", Password: "short"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field)
}
