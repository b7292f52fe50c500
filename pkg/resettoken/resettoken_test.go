package resettoken

import "testing"

func TestGenerateValidate(t *testing.T) {
	key := []byte("secret-key-plus-password-hash")

	token, err := Generate(key, 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := Validate(key, 42, token); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestValidateRejectsWrongUser(t *testing.T) {
	key := []byte("secret-key-plus-password-hash")

	token, err := Generate(key, 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := Validate(key, 7, token); err != ErrInvalidToken {
		t.Errorf("wrong user err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := Generate([]byte("key-before-password-change"), 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := Validate([]byte("key-after-password-change"), 42, token); err != ErrInvalidToken {
		t.Errorf("wrong key err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate([]byte("some-key"), 42, "not.a.token"); err != ErrInvalidToken {
		t.Errorf("garbage err = %v, want ErrInvalidToken", err)
	}
}
