package main

import "github.com/KattaAkshaya/smart-data-cleaner/cmd"

func main() {
	cmd.Execute()
}
