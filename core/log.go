package core

import "github.com/sirupsen/logrus"

// Log is the package-scoped logger used by the Verifier and StateMutator.
// It is independent of any particular handler or receiver — the teacher's
// process callback referenced "this.scope.logger" from an unbound closure;
// here logger access is receiver-independent by construction.
var Log logrus.FieldLogger = logrus.StandardLogger()

// SetLogger overrides the package logger, mirroring the teacher's
// SetSecurityLogger hook so embedding applications can route core log lines
// through their own logrus instance/hooks.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		return
	}
	Log = l
}
