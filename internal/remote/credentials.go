package remote

import "github.com/zonegate-io/zonegate/internal/auth"

// accessKeyFor resolves a channel's credential reference to a concrete
// access key. dest is the peer label used in log messages.
//
// Resolution order: an explicit key pair wins outright, a bare access-key
// id resolves to its owning user's first key, a user identity resolves
// the same way. A store failure, an unknown user, or a user with no keys
// all report not-found; the caller substitutes the system key.
func (d *Directory) accessKeyFor(dest string, ref auth.CredentialRef) (auth.AccessKey, bool) {
	var (
		user  auth.UserRecord
		found bool
		err   error
	)

	switch ref.Kind() {
	case auth.RefStaticKey:
		return ref.Key(), true
	case auth.RefKeyID:
		user, found, err = d.users.UserByAccessKey(ref.AccessKeyID())
	case auth.RefUser:
		user, found, err = d.users.UserByID(ref.UserID())
	default:
		return auth.AccessKey{}, false
	}

	if err != nil || !found {
		fields := map[string]any{"dest": dest}
		if err != nil {
			fields["error"] = err.Error()
		}
		d.logger.Errorf("could not find user info for connection", fields)
		return auth.AccessKey{}, false
	}

	if len(user.Keys) == 0 {
		d.logger.Errorf("user has no access keys", map[string]any{
			"uid":  user.UID,
			"dest": dest,
		})
		return auth.AccessKey{}, false
	}

	return user.Keys[0], true
}
