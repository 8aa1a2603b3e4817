package main

import "github.com/vova2plova/Progressivity/cmd/pv/root"

func main() {
	root.Execute()
}
