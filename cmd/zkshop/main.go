// Command zkshop is the storefront client: it browses the catalogue, keeps a
// cart on the shop and pays for it from a wallet export.
package main

import "github.com/Arihaan/ZKShop/cmd/zkshop/commands"

func main() {
	commands.Execute()
}
