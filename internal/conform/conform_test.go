package conform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/testforge/internal/models"
)

func loginGroups(tests ...models.TestCase) *models.GroupSet {
	set := models.NewGroupSet()
	set.Add(&models.ScenarioGroup{
		IdentifierName:   "userLogin",
		ScenarioTitle:    "User Login",
		ShortFeatureName: "userLogin",
		Tests:            tests,
	})
	return set
}

func TestTagPrefix(t *testing.T) {
	tests := []struct {
		priority string
		expected string
	}{
		{"P1", "@smoke @reg "},
		{"P2", "@sanity @reg "},
		{"P3", "@reg "},
		{"p1", "@smoke @reg "},
		{" P3 ", "@reg "},
		{"P4", ""},
		{"High", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TagPrefix(tt.priority), "priority %q", tt.priority)
	}
}

func TestProcess_ImportShim(t *testing.T) {
	groups := loginGroups(models.TestCase{Description: "Valid login", Priority: "P1"})
	files := models.FileSet{
		"tests/userLogin.spec.ts": "import { test } from '../fixtures/pomFixtures';\n" +
			"test.describe('User Login', () => {\n" +
			"});\n",
	}

	NewProcessor().Process(groups, files, nil)

	lines := strings.Split(files["tests/userLogin.spec.ts"], "\n")
	assert.Equal(t, "import test from '../fixtures/pomFixtures';", lines[0])
}

func TestProcess_ImportShimLeavesDefaultImport(t *testing.T) {
	groups := loginGroups()
	content := "import test from '../fixtures/pomFixtures';\n"
	files := models.FileSet{"tests/userLogin.spec.ts": content}

	NewProcessor().Process(groups, files, nil)
	assert.Equal(t, content, files["tests/userLogin.spec.ts"])
}

func TestProcess_DescribeTitleCorrected(t *testing.T) {
	groups := loginGroups()
	files := models.FileSet{
		"tests/userLogin.spec.ts": "test.describe('Login Functionality Test Suite', () => {\n});\n",
	}

	NewProcessor().Process(groups, files, nil)
	assert.Contains(t, files["tests/userLogin.spec.ts"], "test.describe('User Login',")
}

func TestProcess_CaseTitlesGetTagPrefixes(t *testing.T) {
	groups := loginGroups(
		models.TestCase{Description: "Valid login", Priority: "P1"},
		models.TestCase{Description: "Invalid login", Priority: "P2"},
		models.TestCase{Description: "Locked account", Priority: "P3"},
		models.TestCase{Description: "Remember me", Priority: ""},
	)
	files := models.FileSet{
		"tests/userLogin.spec.ts": strings.Join([]string{
			"test.describe('User Login', () => {",
			"  test('first', async ({ page }) => {",
			"  });",
			"  test('second', async ({ page }) => {",
			"  });",
			"  test('third', async ({ page }) => {",
			"  });",
			"  test('fourth', async ({ page }) => {",
			"  });",
			"});",
		}, "\n"),
	}

	NewProcessor().Process(groups, files, nil)

	out := files["tests/userLogin.spec.ts"]
	assert.Contains(t, out, "test('@smoke @reg Valid login',")
	assert.Contains(t, out, "test('@sanity @reg Invalid login',")
	assert.Contains(t, out, "test('@reg Locked account',")
	assert.Contains(t, out, "test('Remember me',")
}

func TestProcess_BannedPlaceholderTitleRewritten(t *testing.T) {
	groups := loginGroups(models.TestCase{Description: "Valid login", Priority: "P1"})
	files := models.FileSet{
		"tests/userLogin.spec.ts": "test('Test for Login Scenario - Case 1', async ({ page }) => {\n});\n",
	}

	NewProcessor().Process(groups, files, nil)
	assert.Contains(t, files["tests/userLogin.spec.ts"], "test('@smoke @reg Valid login',")
	assert.NotContains(t, files["tests/userLogin.spec.ts"], "Test for")
}

func TestProcess_MatchingTitleLeftAlone(t *testing.T) {
	groups := loginGroups(models.TestCase{Description: "Valid login", Priority: "P1"})
	content := "test('@smoke @reg Valid login', async ({ page }) => {\n});\n"
	files := models.FileSet{"tests/userLogin.spec.ts": content}

	NewProcessor().Process(groups, files, nil)
	assert.Equal(t, content, files["tests/userLogin.spec.ts"])
}

func TestProcess_MissingGroupWarns(t *testing.T) {
	groups := loginGroups()
	content := "test('Something', async ({ page }) => {\n});\n"
	files := models.FileSet{"tests/unknownFeature.spec.ts": content}

	diags := NewProcessor().Process(groups, files, nil)

	assert.Equal(t, content, files["tests/unknownFeature.spec.ts"])
	require.Equal(t, 1, diags.Len())
	d := diags.All()[0]
	assert.Equal(t, "tests/unknownFeature.spec.ts", d.File)
	assert.Contains(t, d.Message, "no scenario group")
}

func TestProcess_ExtraCasesLeftAlone(t *testing.T) {
	groups := loginGroups(models.TestCase{Description: "Valid login", Priority: "P1"})
	files := models.FileSet{
		"tests/userLogin.spec.ts": strings.Join([]string{
			"test('first', async ({ page }) => {",
			"});",
			"test('producer invented this', async ({ page }) => {",
			"});",
		}, "\n"),
	}

	NewProcessor().Process(groups, files, nil)
	out := files["tests/userLogin.spec.ts"]
	assert.Contains(t, out, "test('@smoke @reg Valid login',")
	assert.Contains(t, out, "test('producer invented this',")
}

func TestProcess_AssertionInjectedFromExpectedURL(t *testing.T) {
	groups := loginGroups(models.TestCase{
		Description: "Valid login",
		Priority:    "P1",
		Expected:    "User is redirected to https://app.example.com/dashboard",
	})
	files := models.FileSet{
		"tests/userLogin.spec.ts": strings.Join([]string{
			"test('first', async ({ page }) => {",
			"  await page.goto('/login');",
			"});",
		}, "\n"),
	}

	NewProcessor().Process(groups, files, nil)

	lines := strings.Split(files["tests/userLogin.spec.ts"], "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  await page.waitForURL('https://app.example.com/dashboard');", lines[2])
	assert.Equal(t, "});", lines[3])
}

func TestProcess_NoAssertionWhenExpectedEmpty(t *testing.T) {
	groups := loginGroups(models.TestCase{Description: "Valid login", Priority: "P1"})
	files := models.FileSet{
		"tests/userLogin.spec.ts": strings.Join([]string{
			"test('first', async ({ page }) => {",
			"  await page.goto('/login');",
			"});",
		}, "\n"),
	}

	NewProcessor().Process(groups, files, nil)
	assert.Len(t, strings.Split(files["tests/userLogin.spec.ts"], "\n"), 3)
}

func TestProcess_ExistingAssertionNotDuplicated(t *testing.T) {
	groups := loginGroups(models.TestCase{
		Description: "Valid login",
		Priority:    "P1",
		Expected:    "Dashboard is visible",
	})
	files := models.FileSet{
		"tests/userLogin.spec.ts": strings.Join([]string{
			"test('@smoke @reg Valid login', async ({ page }) => {",
			"  await expect(page.locator('#dash')).toBeVisible();",
			"});",
		}, "\n"),
	}

	before := files["tests/userLogin.spec.ts"]
	NewProcessor().Process(groups, files, nil)
	assert.Equal(t, before, files["tests/userLogin.spec.ts"])
}

func TestProcess_AssertionOutsideWindowNotSeen(t *testing.T) {
	// An existing assertion beyond the lookahead window does not suppress
	// injection; the pass is line-oriented and deliberately shallow.
	groups := loginGroups(models.TestCase{
		Description: "Valid login",
		Priority:    "P1",
		Expected:    "Welcome message is displayed",
	})
	body := []string{
		"test('@smoke @reg Valid login', async ({ page }) => {",
		"  // step 1",
		"  // step 2",
		"  // step 3",
		"  // step 4",
		"  // step 5",
		"  await expect(page.locator('#msg')).toBeVisible();",
		"});",
	}
	files := models.FileSet{"tests/userLogin.spec.ts": strings.Join(body, "\n")}

	NewProcessor().Process(groups, files, nil)
	assert.Equal(t, 2, strings.Count(files["tests/userLogin.spec.ts"], "toBeVisible"))
}

func TestProcess_UnclosedBlockWarns(t *testing.T) {
	groups := loginGroups(models.TestCase{
		Description: "Valid login",
		Priority:    "P1",
		Expected:    "Dashboard is visible",
	})
	files := models.FileSet{
		"tests/userLogin.spec.ts": "test('first', async ({ page }) => {\n  await page.goto('/login');",
	}

	diags := NewProcessor().Process(groups, files, nil)

	require.Equal(t, 1, diags.Len())
	assert.Contains(t, diags.All()[0].Message, "never closes")
	assert.NotContains(t, files["tests/userLogin.spec.ts"], "toBeVisible")
}

func TestProcess_FixtureRegenerated(t *testing.T) {
	groups := loginGroups()
	files := models.FileSet{
		"fixtures/pomFixtures.ts": "// whatever the producer wrote here",
	}

	NewProcessor().Process(groups, files, []string{"UserLogin"})
	assert.Equal(t, RenderFixture([]string{"UserLogin"}), files["fixtures/pomFixtures.ts"])
}

func TestProcess_FixtureRegeneratedUnderOtherDirectory(t *testing.T) {
	groups := loginGroups()
	files := models.FileSet{
		"src/fixtures/pomFixtures.ts": "// misfiled fixture",
	}

	NewProcessor().Process(groups, files, []string{"UserLogin"})
	assert.Equal(t, RenderFixture([]string{"UserLogin"}), files["src/fixtures/pomFixtures.ts"])
}

func TestProcess_KeysPreserved(t *testing.T) {
	groups := loginGroups(models.TestCase{Description: "Valid login", Priority: "P1"})
	files := models.FileSet{
		"tests/userLogin.spec.ts":   "test('x', async ({ page }) => {\n});\n",
		"fixtures/pomFixtures.ts":   "// stale",
		"page-objects/UserLogin.ts": "export class UserLogin {}\n",
	}

	NewProcessor().Process(groups, files, []string{"UserLogin"})

	assert.Equal(t, []string{
		"fixtures/pomFixtures.ts",
		"page-objects/UserLogin.ts",
		"tests/userLogin.spec.ts",
	}, files.Paths())
	assert.Equal(t, "export class UserLogin {}\n", files["page-objects/UserLogin.ts"],
		"non-test, non-fixture files pass through untouched")
}

func TestProcess_SecondRunIsStable(t *testing.T) {
	groups := loginGroups(
		models.TestCase{Description: "Valid login", Priority: "P1", Expected: "Dashboard is visible"},
		models.TestCase{Description: "Invalid login", Priority: "P2"},
	)
	files := models.FileSet{
		"tests/userLogin.spec.ts": strings.Join([]string{
			"import { test } from '../fixtures/pomFixtures';",
			"test.describe('Wrong Title', () => {",
			"  test('Test for Login - Case 1', async ({ page }) => {",
			"    await loginPage.submit();",
			"  });",
			"  test('Test for Login - Case 2', async ({ page }) => {",
			"  });",
			"});",
		}, "\n"),
		"fixtures/pomFixtures.ts": "// stale",
	}

	proc := NewProcessor()
	proc.Process(groups, files, []string{"UserLogin"})
	firstPass := models.FileSet{}
	for k, v := range files {
		firstPass[k] = v
	}

	proc.Process(groups, files, []string{"UserLogin"})
	assert.Equal(t, firstPass, files)
}

func TestProcess_CommentFallbackNotDuplicated(t *testing.T) {
	groups := loginGroups(models.TestCase{
		Description: "Valid login",
		Priority:    "P1",
		Expected:    "Order is persisted in the database",
	})
	files := models.FileSet{
		"tests/userLogin.spec.ts": strings.Join([]string{
			"test('first', async ({ page }) => {",
			"  await loginPage.submit();",
			"});",
		}, "\n"),
	}

	proc := NewProcessor()
	proc.Process(groups, files, nil)
	firstPass := files["tests/userLogin.spec.ts"]
	assert.Equal(t, 1, strings.Count(firstPass, "// Expected: Order is persisted in the database"))

	proc.Process(groups, files, nil)
	assert.Equal(t, firstPass, files["tests/userLogin.spec.ts"])
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "userLogin", baseName("tests/userLogin.spec.ts"))
	assert.Equal(t, "pomFixtures", baseName("fixtures/pomFixtures.ts"))
	assert.Equal(t, "plain", baseName("plain"))
}
