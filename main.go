// main.go
package main

import "github.com/piclens/piclens/cmd"

func main() {
	cmd.Execute()
}
