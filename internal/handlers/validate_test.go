package handlers

import (
	"strings"
	"testing"
)

func TestValidateLink(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		wantErr bool
	}{
		{"valid https", "https://example.com/page", false},
		{"valid http", "http://example.com", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"no scheme", "example.com", true},
		{"wrong scheme", "ftp://example.com", true},
		{"too long", "https://example.com/" + strings.Repeat("a", maxLinkLen), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLink(tt.link)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateLink(%q) error = %v, wantErr %v", tt.link, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategoryName(t *testing.T) {
	if err := validateCategoryName("Reading List"); err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
	if err := validateCategoryName(""); err == nil {
		t.Fatal("empty name should be rejected")
	}
	if err := validateCategoryName("   "); err == nil {
		t.Fatal("blank name should be rejected")
	}
	if err := validateCategoryName(strings.Repeat("x", maxCategoryNameLen+1)); err == nil {
		t.Fatal("overlong name should be rejected")
	}
}

func TestValidateOptionalFields(t *testing.T) {
	long := strings.Repeat("a", maxTitleLen+1)
	short := "fine"

	if err := validateTitle(nil); err != nil {
		t.Fatalf("nil title should pass: %v", err)
	}
	if err := validateTitle(&short); err != nil {
		t.Fatalf("short title should pass: %v", err)
	}
	if err := validateTitle(&long); err == nil {
		t.Fatal("overlong title should be rejected")
	}

	longComment := strings.Repeat("a", maxCommentLen+1)
	if err := validateComment(nil); err != nil {
		t.Fatalf("nil comment should pass: %v", err)
	}
	if err := validateComment(&longComment); err == nil {
		t.Fatal("overlong comment should be rejected")
	}
}
