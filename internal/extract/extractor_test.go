package extract

import (
	"reflect"
	"testing"

	"github.com/honeylab/scambait/internal/domain"
)

func TestExtractPaymentHandles(t *testing.T) {
	t.Parallel()

	intel := Extract("Send the fee to Verify@paytm or rajesh.k@oksbi today")

	got := intel[domain.ArtifactUPIID]
	want := []string{"verify@paytm", "rajesh.k@oksbi"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	intel := Extract("contact me at someone@gmail for details")
	if len(intel[domain.ArtifactUPIID]) != 0 {
		t.Fatalf("unknown provider should be discarded, got %v", intel[domain.ArtifactUPIID])
	}
}

func TestExtractPhoneNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{"call me on 9876543210 now", []string{"+919876543210"}},
		{"helpline +91-9876543210 only", []string{"+919876543210"}},
		{"office line 044-1234 is open", nil},
	}

	for _, tt := range tests {
		got := Extract(tt.text)[domain.ArtifactPhone]
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Extract(%q) phones = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractBankAccountNeedsCue(t *testing.T) {
	t.Parallel()

	intel := Extract("Transfer to account number: 123456789012 before evening")
	if got := intel[domain.ArtifactBankAccount]; !reflect.DeepEqual(got, []string{"123456789012"}) {
		t.Fatalf("expected account token, got %v", got)
	}

	bare := Extract("the reference is 123456789012")
	if len(bare[domain.ArtifactBankAccount]) != 0 {
		t.Fatalf("bare digit run should not extract, got %v", bare[domain.ArtifactBankAccount])
	}
}

func TestExtractLinksIncludingShorteners(t *testing.T) {
	t.Parallel()

	intel := Extract("click http://secure-verify.example.com/login or bit.ly/a1b2c3")

	got := intel[domain.ArtifactLink]
	want := []string{"http://secure-verify.example.com/login", "https://bit.ly/a1b2c3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractEmptyText(t *testing.T) {
	t.Parallel()

	intel := Extract("")
	if len(intel) != 0 {
		t.Fatalf("expected empty mapping, got %v", intel)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()

	text := "Pay verify@paytm urgently, call 9876543210, see bit.ly/xyz12"

	first := Extract(text)
	second := Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction not reproducible: %v vs %v", first, second)
	}

	// Re-merging the same artifacts must not grow the session's set.
	session := make(domain.Intelligence)
	session.Merge(first)
	once := session.Clone()
	session.Merge(second)
	if !reflect.DeepEqual(session, once) {
		t.Fatalf("re-merge duplicated artifacts: %v vs %v", session, once)
	}
}

func TestExtractSuspiciousKeywords(t *testing.T) {
	t.Parallel()

	intel := Extract("URGENT: verify your account or it will be blocked")

	keywords := intel[domain.ArtifactKeyword]
	for _, want := range []string{"urgent", "verify", "blocked", "account"} {
		found := false
		for _, kw := range keywords {
			if kw == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected keyword %q in %v", want, keywords)
		}
	}
}
