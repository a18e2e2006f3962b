package conform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFixture(t *testing.T) {
	out := RenderFixture([]string{"Login", "ProductSearch"})

	expected := strings.Join([]string{
		"import { test as baseTest } from '@playwright/test';",
		"import { Login } from '../page-objects/Login';",
		"import { ProductSearch } from '../page-objects/ProductSearch';",
		"",
		"const test = baseTest.extend({",
		"    loginPage: async ({ page }, use) => {",
		"        await use(new Login(page));",
		"    },",
		"    productSearchPage: async ({ page }, use) => {",
		"        await use(new ProductSearch(page));",
		"    },",
		"});",
		"",
		"export default test;",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestRenderFixture_Deterministic(t *testing.T) {
	ids := []string{"Login", "Checkout"}
	assert.Equal(t, RenderFixture(ids), RenderFixture(ids))
}

func TestRenderFixture_EmptyIdentifierList(t *testing.T) {
	out := RenderFixture(nil)

	assert.Contains(t, out, "import { test as baseTest } from '@playwright/test';")
	assert.Contains(t, out, "const test = baseTest.extend({\n});")
	assert.Contains(t, out, "export default test;")
	assert.NotContains(t, out, "page-objects")
}
