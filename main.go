package main

import "github.com/vinybk/wp-post-copier/cmd"

func main() {
	cmd.Execute()
}
