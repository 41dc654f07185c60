package main

import "github.com/Manu343726/copro/cmd"

func main() {
	cmd.Execute()
}
