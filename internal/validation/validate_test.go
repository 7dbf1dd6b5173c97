package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobkit/internal/types"
)

// wordsOf builds a text of exactly n words.
func wordsOf(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func testProfile() ConstraintProfile {
	return ConstraintProfile{
		Kind:      types.ArtifactCoverLetter,
		MinWords:  100,
		MaxWords:  200,
		Tolerance: 0.5,
	}
}

func testSource() Source {
	return Source{
		ResumeText:     "Senior backend engineer, Acme Corp, 2018-2023, led payments team of 6 engineers",
		JobDescription: "Looking for a backend engineer with payments experience",
	}
}

func TestValidate_AcceptedInBand(t *testing.T) {
	res := Validate(testProfile(), wordsOf(150), testSource(), nil)
	assert.Equal(t, types.VerdictAccepted, res.Verdict)
	assert.Empty(t, res.Reasons)
}

func TestValidate_UnderBandWithinTolerance(t *testing.T) {
	// 60 words: below min 100 but above hard floor 50
	res := Validate(testProfile(), wordsOf(60), testSource(), nil)
	assert.Equal(t, types.VerdictRepairable, res.Verdict)
	require.Len(t, res.Reasons, 1)
	assert.Contains(t, res.Reasons[0], "below the minimum")
}

func TestValidate_FarUnderBand(t *testing.T) {
	// 30 words: below hard floor 50
	res := Validate(testProfile(), wordsOf(30), testSource(), nil)
	assert.Equal(t, types.VerdictRejected, res.Verdict)
	require.Len(t, res.Reasons, 1)
	assert.Contains(t, res.Reasons[0], "far below")
}

func TestValidate_OverBandWithinTolerance(t *testing.T) {
	// 250 words: above max 200 but below hard ceiling 300
	res := Validate(testProfile(), wordsOf(250), testSource(), nil)
	assert.Equal(t, types.VerdictRepairable, res.Verdict)
	assert.Contains(t, res.Reasons[0], "above the maximum")
}

func TestValidate_FarOverBand(t *testing.T) {
	res := Validate(testProfile(), wordsOf(400), testSource(), nil)
	assert.Equal(t, types.VerdictRejected, res.Verdict)
	assert.Contains(t, res.Reasons[0], "far above")
}

func TestValidate_MetaMentionRejected(t *testing.T) {
	text := wordsOf(149) + " as an AI I tailored this letter"
	res := Validate(testProfile(), text, testSource(), nil)
	assert.Equal(t, types.VerdictRejected, res.Verdict)
	require.NotEmpty(t, res.Reasons)
	assert.Contains(t, res.Reasons[0], "generation tooling")
}

func TestValidate_FabricationFirstOccurrenceRepairable(t *testing.T) {
	text := wordsOf(148) + " improved throughput by 47%"
	res := Validate(testProfile(), text, testSource(), nil)
	assert.Equal(t, types.VerdictRepairable, res.Verdict)
	require.Len(t, res.Reasons, 1)
	assert.Contains(t, res.Reasons[0], `numeric claim "47"`)
}

func TestValidate_FabricationRepeatedRejected(t *testing.T) {
	text := wordsOf(148) + " improved throughput by 47%"
	history := []types.GenerationAttempt{
		{
			Kind:   types.ArtifactCoverLetter,
			Number: 1,
			Text:   "earlier attempt",
			Result: types.ValidationResult{
				Verdict: types.VerdictRepairable,
				Reasons: []string{`numeric claim "32" does not appear in the source resume or job description`},
			},
		},
	}
	res := Validate(testProfile(), text, testSource(), history)
	assert.Equal(t, types.VerdictRejected, res.Verdict)
}

func TestValidate_GroundedNumbersAccepted(t *testing.T) {
	// 2018, 2023 and 6 all appear in the source resume
	text := wordsOf(144) + " from 2018 to 2023 leading 6 engineers"
	res := Validate(testProfile(), text, testSource(), nil)
	assert.Equal(t, types.VerdictAccepted, res.Verdict)
}

func TestValidate_RoleCoverage(t *testing.T) {
	profile := ConstraintProfile{
		Kind:              types.ArtifactResume,
		MinWords:          10,
		MaxWords:          500,
		Tolerance:         0.5,
		CheckRoleCoverage: true,
	}
	src := Source{
		ResumeText: "Acme Corp 2018-2023 payments lead\nBeta Inc 2014-2018 platform engineer\nGamma LLC 2010 to 2014 sysadmin",
	}

	// Output drops the Beta Inc role entirely.
	out := wordsOf(20) + " Acme Corp 2018-2023 payments lead. Gamma LLC 2010-2014 sysadmin."
	res := Validate(profile, out, src, nil)
	assert.Equal(t, types.VerdictRepairable, res.Verdict)
	require.Len(t, res.Reasons, 1)
	assert.Contains(t, res.Reasons[0], "2014-2018")

	// Output keeps all roles, even compressed.
	full := wordsOf(20) + " 2018-2023 Acme, 2014-2018 Beta, 2010-2014 Gamma."
	res = Validate(profile, full, src, nil)
	assert.Equal(t, types.VerdictAccepted, res.Verdict)
}

func TestSourceRoles_NormalizesOpenRanges(t *testing.T) {
	roles := SourceRoles("Lead at Acme 2020 to present, before that 2016–2020 at Beta")
	assert.Equal(t, []string{"2020-present", "2016-2020"}, roles)
}

func TestProfileFor(t *testing.T) {
	p, ok := ProfileFor(types.ArtifactResume)
	require.True(t, ok)
	assert.Equal(t, 900, p.MinWords)
	assert.Equal(t, 1100, p.MaxWords)
	assert.True(t, p.CheckRoleCoverage)
	assert.Equal(t, 450, p.HardMinWords())

	_, ok = ProfileFor(types.ArtifactKind("press_release"))
	assert.False(t, ok)
}

func TestCleanCompletion(t *testing.T) {
	raw := "Dear team,\\nI led the payments platform.\n```\ncode fence\n```\nSee [my site](https://example.com) for details.\n...\n... (continued)\nRegards"
	cleaned := CleanCompletion(raw)

	assert.NotContains(t, cleaned, `\n`)
	assert.NotContains(t, cleaned, "```")
	assert.NotContains(t, cleaned, "...")
	assert.Contains(t, cleaned, "my site")
	assert.NotContains(t, cleaned, "https://example.com")
	assert.Contains(t, cleaned, "Dear team,\nI led the payments platform.")
}

func TestMetaMentions_CleanTextHasNone(t *testing.T) {
	assert.Empty(t, MetaMentions("Led migration of payment rails at Acme Corp"))
}

func TestFabricatedNumbers_CommaAndPercentNormalization(t *testing.T) {
	src := Source{ResumeText: "handled 2,500 requests", JobDescription: ""}
	assert.Empty(t, FabricatedNumbers("handled 2500 requests daily", src))
	reasons := FabricatedNumbers("cut costs by 30%", src)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], `"30"`)
}
