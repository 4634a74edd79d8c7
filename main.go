package main

import "rental-backend/cmd"

func main() {
	cmd.Execute()
}
