package main

import (
	"github.com/findy-network/findy-test-vectors/agent/utils"
	"github.com/findy-network/findy-test-vectors/cmd"
	"github.com/golang/glog"
	"github.com/lainio/err2"
)

var versionInfo = "Findy test vectors v. " + utils.Version

func main() {
	defer err2.Catch(err2.Err(func(err error) {
		glog.Error(err)
	}))
	defer glog.Flush()

	utils.Settings.SetVersionInfo(versionInfo)
	cmd.Execute()
}
