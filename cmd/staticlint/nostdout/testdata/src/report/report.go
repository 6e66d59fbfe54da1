package report

import (
	"fmt"
	"io"
	"os"
)

func Write(w io.Writer, url string, bytes int64) {
	fmt.Fprintf(w, "%s %d\n", url, bytes)
}

func Bad(url string, bytes int64) {
	fmt.Printf("%s %d\n", url, bytes) // want `вызов fmt.Printf вне пакета main`
	fmt.Println(url)                  // want `вызов fmt.Println вне пакета main`
	Write(os.Stdout, url, bytes)      // want `os.Stdout вне пакета main`
	println(url)                      // want `встроенный println пишет в stderr`
}

func Errors(url string) error {
	return fmt.Errorf("bad url %s", url)
}
