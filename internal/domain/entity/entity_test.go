package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range OrderStatuses() {
		assert.True(t, s.IsValid(), s)
	}
	for _, s := range []OrderStatus{"", "shipped", "deliverd", "cancel", "Lost"} {
		assert.False(t, s.IsValid(), s)
	}
}

func TestOrderStatuses_ReturnsCopy(t *testing.T) {
	got := OrderStatuses()
	got[0] = "tampered"
	assert.Equal(t, StatusNotProcess, OrderStatuses()[0])
}

func TestUser_JSONHidesSecrets(t *testing.T) {
	u := User{ID: "u1", Name: "John Doe", Email: "john@example.com", Password: "$2a$hash", Answer: "Football", Role: RoleAdmin}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "password")
	assert.NotContains(t, m, "answer")
	assert.Equal(t, "u1", m["_id"])
	assert.EqualValues(t, 1, m["role"])
}

func TestUser_Profile(t *testing.T) {
	u := &User{ID: "u1", Name: "n", Email: "e", Password: "p", Phone: "ph", Address: "a", Role: RoleUser}
	assert.Equal(t, UserProfile{ID: "u1", Name: "n", Email: "e", Phone: "ph", Address: "a", Role: RoleUser}, u.Profile())
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Electronics":         "electronics",
		"  Book & Stationery": "book-stationery",
		"NUS T-shirt 2024!":   "nus-t-shirt-2024",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
