package main

import "github.com/theirongolddev/finquest/cmd"

func main() {
	cmd.Execute()
}
