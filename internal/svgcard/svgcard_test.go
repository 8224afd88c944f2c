package svgcard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitglance/gitglance/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCard = `<svg xmlns="http://www.w3.org/2000/svg">
<text>
<tspan id="age_data">old age</tspan><tspan id="age_data_dots"> .. </tspan>
<tspan id="star_data">0</tspan><tspan id="star_data_dots"> .. </tspan>
<tspan id="repo_data">0</tspan><tspan id="repo_data_dots"> .. </tspan>
<tspan id="commit_data">0</tspan><tspan id="commit_data_dots"> .. </tspan>
<tspan id="loc_total">0</tspan><tspan id="loc_total_dots"> .. </tspan>
<tspan id="loc_add">0</tspan>
<tspan id="loc_del">0</tspan>
</text>
</svg>`

var testSummary = schema.Summary{
	Age:       "19 years, 1 month, 23 days",
	Stars:     1234,
	Repos:     56,
	Commits:   7890,
	NetLOC:    100000,
	Additions: 123456,
	Deletions: 23456,
}

func TestApply(t *testing.T) {
	out, err := Apply([]byte(testCard), testSummary)
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `<tspan id="age_data">19 years, 1 month, 23 days</tspan>`)
	assert.Contains(t, doc, `<tspan id="star_data">1,234</tspan>`)
	assert.Contains(t, doc, `<tspan id="repo_data">56</tspan>`)
	assert.Contains(t, doc, `<tspan id="commit_data">7,890</tspan>`)
	assert.Contains(t, doc, `<tspan id="loc_total">100,000</tspan>`)
	assert.Contains(t, doc, `<tspan id="loc_add">+123,456</tspan>`)
	assert.Contains(t, doc, "<tspan id=\"loc_del\">−23,456</tspan>")
}

func TestApplyDotLeaders(t *testing.T) {
	out, err := Apply([]byte(testCard), testSummary)
	require.NoError(t, err)
	doc := string(out)

	// star value "1,234" is 5 runes; width 50 leaves 45 dots.
	assert.Contains(t, doc, fmt.Sprintf(`<tspan id="star_data_dots"> %s </tspan>`, strings.Repeat(".", 45)))

	// The loc_total leader measures the combined "total , +add , −del"
	// string: 100,000(7) + " , "(3) + +123,456(8) + " , "(3) + −23,456(7) = 28 runes,
	// leaving 12 of 40.
	assert.Contains(t, doc, fmt.Sprintf(`<tspan id="loc_total_dots"> %s </tspan>`, strings.Repeat(".", 12)))
}

func TestApplyMissingElement(t *testing.T) {
	_, err := Apply([]byte(`<svg><text id="something_else">x</text></svg>`), testSummary)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no element with id")
}

func TestApplyOversizedValueClampsLeader(t *testing.T) {
	long := testSummary
	long.Age = strings.Repeat("x", 60)

	out, err := Apply([]byte(testCard), long)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<tspan id="age_data_dots">  </tspan>`, "leader never goes negative")
}

func TestUpdateCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.svg")
	require.NoError(t, os.WriteFile(path, []byte(testCard), 0o644))

	require.NoError(t, UpdateCard(path, testSummary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<tspan id="star_data">1,234</tspan>`)
}

func TestUpdateCardMissingFile(t *testing.T) {
	err := UpdateCard(filepath.Join(t.TempDir(), "nope.svg"), testSummary)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read card")
}
