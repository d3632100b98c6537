package cli

import (
	"strings"

	"github.com/canton-labs/create-canton-app/internal/branding"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

const bannerArt = `
   ____            _
  / ___|__ _ _ __ | |_ ___  _ __
 | |   / _` + "`" + ` | '_ \| __/ _ \| '_ \
 | |__| (_| | | | | || (_) | | | |
  \____\__,_|_| |_|\__\___/|_| |_|
`

func printBanner(p *ui.Printer) {
	for _, line := range strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n") {
		p.Info("%s", line)
	}
	p.Heading("  %s", branding.Description())
	p.Dim("  %s", branding.Tagline())
	p.Blank()
}
