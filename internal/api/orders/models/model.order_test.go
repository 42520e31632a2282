package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderDeliveryType(t *testing.T) {
	cases := []struct {
		transport string
		want      string
	}{
		{"Retira", DeliveryTypeRetira},
		{"Retira en deposito", DeliveryTypeRetira},
		{"Via Cargo", DeliveryTypeReparto},
		{"Cruz del Sur", DeliveryTypeReparto},
		{"", DeliveryTypeReparto},
		// Phân biệt hoa thường, "retira" viết thường không phải Retira
		{"retira", DeliveryTypeReparto},
		{"Ret", DeliveryTypeReparto},
	}

	for _, tc := range cases {
		o := &Order{Transport: tc.transport}
		assert.Equal(t, tc.want, o.DeliveryType(), "transport=%q", tc.transport)
	}
}
