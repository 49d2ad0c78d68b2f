package cmd

import (
	_ "stackforge/cmd/check"
	_ "stackforge/cmd/components"
	_ "stackforge/cmd/initcmd"
	_ "stackforge/cmd/root"
	_ "stackforge/cmd/server"
)
