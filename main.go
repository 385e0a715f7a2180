package main

import "github.com/ValentinKolb/fbstore/cmd"

func main() {
	cmd.Execute()
}
