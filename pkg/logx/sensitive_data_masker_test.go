package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"startupconnect/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"email":"jane@fund.io","password":"abc123"}`),
			output: []byte(`{"email":"[MASKED]","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Session token",
			input:  []byte(`{"token":"eyJhbGciOiJFUzI1NiIsInR5cCI6IkpXVCJ9","user":{"id":7}}`),
			output: []byte(`{"token":"[MASKED]","user":{"id":7}}`),
		},
		{
			name:   "Card number and CVV",
			input:  []byte(`{"method":"card","cardNumber":"4111111111111111","cvv":"123","expiry":"12/30"}`),
			output: []byte(`{"method":"card","cardNumber":"[MASKED]","cvv":"[MASKED]","expiry":"12/30"}`),
		},
		{
			name:   "UPI id and account number",
			input:  []byte(`{"upiId":"jane@upi","accountNumber":"123456789012"}`),
			output: []byte(`{"upiId":"[MASKED]","accountNumber":"[MASKED]"}`),
		},
		{
			name:   "Bearer header",
			input:  []byte("Authorization: Bearer eyJhbGciOiJ\r\nAccept: */*"),
			output: []byte("Authorization: Bearer [MASKED]\r\nAccept: */*"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
