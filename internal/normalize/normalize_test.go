package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind_Domain(t *testing.T) {
	k, err := ParseKind("domain")
	require.NoError(t, err)
	assert.Equal(t, KindDomain, k)
}

func TestParseKind_LinkedIn(t *testing.T) {
	k, err := ParseKind(" LinkedIn ")
	require.NoError(t, err)
	assert.Equal(t, KindLinkedIn, k)
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := ParseKind("facebook")
	assert.Error(t, err)
}

func TestNormalizeDomain_FullURL(t *testing.T) {
	assert.Equal(t, "acme.com", Normalize("https://www.acme.com/about", KindDomain))
}

func TestNormalizeDomain_BareDomain(t *testing.T) {
	assert.Equal(t, "acme.com", Normalize("acme.com", KindDomain))
}

func TestNormalizeDomain_SchemeLessWithPath(t *testing.T) {
	assert.Equal(t, "acme.com", Normalize("acme.com/careers?ref=nav", KindDomain))
}

func TestNormalizeDomain_SubdomainDropped(t *testing.T) {
	assert.Equal(t, "example.co.uk", Normalize("https://sub.example.co.uk/path", KindDomain))
}

func TestNormalizeDomain_Uppercased(t *testing.T) {
	assert.Equal(t, "acme.com", Normalize("HTTPS://WWW.ACME.COM", KindDomain))
}

func TestNormalizeDomain_BrokenSchemeTypo(t *testing.T) {
	assert.Equal(t, "unusual-url-format.org", Normalize("http//unusual-url-format.org", KindDomain))
	assert.Equal(t, "unusual-url-format.org", Normalize("https://http//unusual-url-format.org", KindDomain))
}

func TestNormalizeDomain_Unnormalizable(t *testing.T) {
	assert.Equal(t, "", Normalize("", KindDomain))
	assert.Equal(t, "", Normalize("   ", KindDomain))
	assert.Equal(t, "", Normalize("not a url at all", KindDomain))
	assert.Equal(t, "", Normalize("localhost", KindDomain))
}

func TestNormalizeDomain_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.acme.com/about",
		"acme.com",
		"sub.example.co.uk",
		"http//unusual-url-format.org",
		"garbage",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in, KindDomain)
		assert.Equal(t, once, Normalize(once, KindDomain), "input %q", in)
	}
}

func TestNormalizeLinkedIn_Company(t *testing.T) {
	assert.Equal(t, "microsoft", Normalize("http://linkedin.com/company/microsoft", KindLinkedIn))
}

func TestNormalizeLinkedIn_Profile(t *testing.T) {
	assert.Equal(t, "jane-doe-123", Normalize("https://www.linkedin.com/in/jane-doe-123/", KindLinkedIn))
}

func TestNormalizeLinkedIn_QueryStripped(t *testing.T) {
	assert.Equal(t, "acme-corp", Normalize("https://linkedin.com/company/acme-corp?trk=nav", KindLinkedIn))
}

func TestNormalizeLinkedIn_AboutSectionStripped(t *testing.T) {
	assert.Equal(t, "acme-corp", Normalize("https://linkedin.com/company/acme-corp/about/", KindLinkedIn))
}

func TestNormalizeLinkedIn_PercentDecoded(t *testing.T) {
	assert.Equal(t, "caf-group", Normalize("https://linkedin.com/company/caf%C3%A9-group", KindLinkedIn))
}

func TestNormalizeLinkedIn_Lowercased(t *testing.T) {
	assert.Equal(t, "acme-corp", Normalize("https://linkedin.com/company/Acme-Corp", KindLinkedIn))
}

func TestNormalizeLinkedIn_Idempotent(t *testing.T) {
	inputs := []string{
		"https://linkedin.com/company/acme-corp/about?trk=x",
		"https://www.linkedin.com/in/jane-doe-123/",
		"acme-corp",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in, KindLinkedIn)
		assert.Equal(t, once, Normalize(once, KindLinkedIn), "input %q", in)
	}
}

func TestNormalizeLinkedIn_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize("", KindLinkedIn))
	assert.Equal(t, "", Normalize("   ", KindLinkedIn))
}
