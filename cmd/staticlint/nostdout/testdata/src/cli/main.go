package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("/index.html 2326")
	fmt.Fprintln(os.Stdout, "/about 100")
}
