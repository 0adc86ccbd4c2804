// Command stasm-go locates facial landmarks in images with the Stasm library.
package main

func main() {
	Execute()
}
