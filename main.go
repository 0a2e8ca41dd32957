package main

import "data-extractor/cmd"

func main() {
	cmd.Execute()
}
