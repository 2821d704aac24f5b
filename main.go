package main

import "github.com/jsphweid/musicmodel/cmd"

func main() {
	cmd.Execute()
}
