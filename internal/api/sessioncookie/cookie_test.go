package sessioncookie

import "testing"

func TestSignVerify_Roundtrip(t *testing.T) {
	value := Sign("some-token", "secret")

	token, ok := Verify(value, "secret")
	if !ok {
		t.Fatalf("expected valid signature")
	}
	if token != "some-token" {
		t.Fatalf("token = %q, want some-token", token)
	}
}

func TestVerify_Rejects(t *testing.T) {
	valid := Sign("some-token", "secret")

	cases := map[string]string{
		"tampered token":     "other-token." + valid[len("some-token."):],
		"tampered signature": "some-token.forged",
		"wrong secret":       valid,
		"no separator":       "sometoken",
		"empty":              "",
	}

	for name, value := range cases {
		secret := "secret"
		if name == "wrong secret" {
			secret = "other"
		}
		if _, ok := Verify(value, secret); ok {
			t.Fatalf("%s: expected verification failure", name)
		}
	}
}
