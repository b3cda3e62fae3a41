package main

import "github.com/nkuzmik/slidedistill/cmd"

func main() {
	cmd.Execute()
}
