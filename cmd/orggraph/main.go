// Command orggraph seeds a property graph from an organizational workbook.
package main

func main() {
	Execute()
}
