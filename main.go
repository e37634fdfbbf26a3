package main

import "github.com/wiktorkowalski/blog/cmd"

func main() {
	cmd.Execute()
}
