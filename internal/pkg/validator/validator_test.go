package validator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"aanderson", "j.doe", "user_01", "abc"}
	invalid := []string{"ab", "has space", "semi;colon", ""}
	for _, s := range valid {
		if !IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = true, want false", s)
		}
	}
}

func TestIsValidID(t *testing.T) {
	cases := []struct {
		input int64
		want  bool
	}{
		{1, true},
		{9000, true},
		{0, false},
		{-1, false},
	}
	for _, c := range cases {
		if got := IsValidID(c.input); got != c.want {
			t.Errorf("IsValidID(%d) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseID(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"42", 42},
		{" 7 ", 7},
		{"3.14", 0},
		{"NaN", 0},
		{"abc", 0},
		{"", 0},
		{"-5", -5},
		{"99999999999999999999", 0},
	}
	for _, c := range cases {
		if got := ParseID(c.input); got != c.want {
			t.Errorf("ParseID(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestIsValidStrings(t *testing.T) {
	assert.True(t, IsValidStrings("a", "b"))
	assert.True(t, IsValidStrings())
	assert.False(t, IsValidStrings("a", ""))
	assert.False(t, IsValidStrings("   "))
}

type sample struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Amount   float64    `json:"amount"`
	Note     *string    `json:"note,omitempty"`
	When     *time.Time `json:"when"`
	internal string
}

func TestIsValidObject(t *testing.T) {
	note := "ok"
	now := time.Now()

	assert.True(t, IsValidObject(sample{ID: 1, Name: "x", Note: &note, When: &now}))
	assert.True(t, IsValidObject(&sample{Name: "x", Note: &note, When: &now}))
	assert.True(t, IsValidObject(sample{Name: "x"}, "note", "when"))

	assert.False(t, IsValidObject(sample{Name: "x"}), "nil pointers are invalid")
	assert.False(t, IsValidObject(sample{Name: "  ", Note: &note, When: &now}))
	assert.False(t, IsValidObject(sample{Name: "x", Amount: math.NaN(), Note: &note, When: &now}))

	blank := " "
	assert.False(t, IsValidObject(sample{Name: "x", Note: &blank, When: &now}))

	assert.False(t, IsValidObject(nil))
	assert.False(t, IsValidObject((*sample)(nil)))
	assert.False(t, IsValidObject("not a struct"))
}

func TestIsPropertyOf(t *testing.T) {
	assert.True(t, IsPropertyOf("id", sample{}))
	assert.True(t, IsPropertyOf("note", &sample{}))
	assert.False(t, IsPropertyOf("Name", sample{}))
	assert.False(t, IsPropertyOf("internal", sample{}))
	assert.False(t, IsPropertyOf("password", sample{}))
	assert.False(t, IsPropertyOf("id", nil))
}

func TestIsEmptyObject(t *testing.T) {
	assert.True(t, IsEmptyObject(nil))
	assert.True(t, IsEmptyObject(sample{}))
	assert.True(t, IsEmptyObject(&sample{}))
	assert.True(t, IsEmptyObject((*sample)(nil)))
	assert.True(t, IsEmptyObject(map[string]string{}))

	assert.False(t, IsEmptyObject(sample{ID: 1}))
	assert.False(t, IsEmptyObject(map[string]string{"username": "x"}))
}
