package conform

import (
	"fmt"
	"strings"

	"github.com/harrison/testforge/internal/naming"
)

// FixturePath is the designated fixture-wiring file. Whenever the producer
// emits anything at this path it is discarded and regenerated
// deterministically; re-running with the same identifier list yields
// byte-identical output.
const FixturePath = "fixtures/pomFixtures.ts"

// fixtureFileName is matched against path base names so a producer that
// placed the fixture under a different directory still gets it regenerated.
const fixtureFileName = "pomFixtures.ts"

// RenderFixture builds the fixture-wiring file content for the given
// distinct page-object identifiers, in the order given. Each identifier
// yields one import line and one factory entry keyed by its camelCase form
// with a "Page" suffix. An empty identifier list yields an extension object
// with no entries.
func RenderFixture(identifiers []string) string {
	var b strings.Builder

	b.WriteString("import { test as baseTest } from '@playwright/test';\n")
	for _, id := range identifiers {
		fmt.Fprintf(&b, "import { %s } from '../page-objects/%s';\n", id, id)
	}

	b.WriteString("\nconst test = baseTest.extend({\n")
	for _, id := range identifiers {
		fmt.Fprintf(&b, "    %sPage: async ({ page }, use) => {\n", naming.ToCamelCase(id))
		fmt.Fprintf(&b, "        await use(new %s(page));\n", id)
		b.WriteString("    },\n")
	}
	b.WriteString("});\n")

	b.WriteString("\nexport default test;\n")
	return b.String()
}
