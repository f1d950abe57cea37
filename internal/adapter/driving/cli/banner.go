package cli

import (
	"fmt"
	"io"

	"github.com/diillson/aws-cost-by-group-go/pkg/console"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer, versionStr string) {
	banner := `
   ___          _     _             ___
  / __|___ ___ | |_  | |__ _  _    / __|_ _ ___ _  _ _ __
 | (__/ _ (_-< |  _| | '_ \ || |  | (_ | '_/ _ \ || | '_ \
  \___\___/__/  \__| |_.__/\_, |   \___|_| \___/\_,_| .__/
                           |__/                     |_|
        `
	fmt.Fprintln(w, console.BoldRed(banner))
	fmt.Fprintln(w, console.BrightBlue(fmt.Sprintf("AWS Cost by Group CLI (v%s)", versionStr)))
}
