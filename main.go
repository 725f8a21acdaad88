package main

import "github.com/spaghettifunk/heritage/cmd"

func main() {
	cmd.Execute()
}
