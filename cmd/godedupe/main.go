package main

import "github.com/dbsmedya/godedupe/cmd/godedupe/cmd"

func main() {
	cmd.Execute()
}
