package main

import "github.com/pometrix/ledger-export/cmd/ledgerctl/cmd"

func main() {
	cmd.Execute()
}
