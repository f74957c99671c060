package auth

import "testing"

func TestSanitizeEmailKey(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"staff@uni.edu.my", "staff@uni,edu,my"},
		{"Jane.Doe@Uni.Edu.My", "jane,doe@uni,edu,my"},
		{"nodots@example", "nodots@example"},
	}
	for _, tt := range tests {
		if got := SanitizeEmailKey(tt.email); got != tt.want {
			t.Errorf("SanitizeEmailKey(%q) = %q; want %q", tt.email, got, tt.want)
		}
		if got := UnsanitizeKey(SanitizeEmailKey(tt.email)); got != UnsanitizeKey(SanitizeEmailKey(tt.want)) {
			t.Errorf("UnsanitizeKey round-trip broke for %q", tt.email)
		}
	}
}

func TestIsPublicProvider(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"somebody@gmail.com", true},
		{"somebody@GMAIL.com", true},
		{"somebody@yahoo.com", true},
		{"s12345@student.uni.edu.my", false},
		{"noat", false},
	}
	for _, tt := range tests {
		if got := IsPublicProvider(tt.email); got != tt.want {
			t.Errorf("IsPublicProvider(%q) = %v; want %v", tt.email, got, tt.want)
		}
	}
}

func TestExtractMatricToken(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"s12345@student.uni.edu.my", "S12345"},
		{"dp123456@student.uni.edu.my", "DP123456"},
		{"s.12345@student.uni.edu.my", "S12345"},  // dots removed
		{"s12345+club@student.uni.edu.my", "S12345"}, // plus suffix stripped
		{"john.doe+2024@inst.edu", "JOHNDOE"},
		{"nodomainlocal", "NODOMAINLOCAL"},
	}
	for _, tt := range tests {
		if got := ExtractMatricToken(tt.email); got != tt.want {
			t.Errorf("ExtractMatricToken(%q) = %q; want %q", tt.email, got, tt.want)
		}
	}
}

func TestLooksLikeMatric(t *testing.T) {
	tests := []struct {
		matric string
		want   bool
	}{
		{"S12345", true},
		{"s12345", true},
		{"DP123456", true},
		{"GS12345", true},
		{"12345", true},
		{"A1234", true},       // flexible single-letter form
		{"A123456789", true},  // up to 9 digits
		{"JOHNDOE", false},
		{"S123", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeMatric(tt.matric); got != tt.want {
			t.Errorf("LooksLikeMatric(%q) = %v; want %v", tt.matric, got, tt.want)
		}
	}
}

func TestValidateMatric(t *testing.T) {
	tests := []struct {
		matric string
		want   bool
	}{
		{"S12345", true},
		{"DP123456", true},
		{"GS12345", true},
		{"12345", true},
		{"A1234", false}, // flexible form is not canonical
		{"S123456", false},
	}
	for _, tt := range tests {
		if got := ValidateMatric(tt.matric); got != tt.want {
			t.Errorf("ValidateMatric(%q) = %v; want %v", tt.matric, got, tt.want)
		}
	}
}

func TestCleanDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ahmad bin ali / FKE", "Ahmad Bin Ali"},
		{"jane doe | Engineering", "Jane Doe"},
		{"JOHN SMITH - CS", "John Smith"},
		{"already clean", "Already Clean"},
		{"", ""},
		{"/ org only", ""},
	}
	for _, tt := range tests {
		if got := CleanDisplayName(tt.name); got != tt.want {
			t.Errorf("CleanDisplayName(%q) = %q; want %q", tt.name, got, tt.want)
		}
	}
}
