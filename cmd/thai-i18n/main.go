package main

import "github.com/yejune/thai-i18n/cmd"

func main() {
	cmd.Execute()
}
