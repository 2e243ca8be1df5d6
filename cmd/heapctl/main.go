// Command heapctl drives an emberheap arena from a shell, for manual
// testing and demoing. It is not an embedding host: it exercises the
// library the way a developer would, nothing more.
package main

func main() {
	execute()
}
