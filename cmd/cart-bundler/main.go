package main

import cmd "github.com/h-rajagopal/cart-bundler-v0/cmd/cli"

func main() {
	cmd.Execute()
}
