// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bind describes which host locations are visible at which guest
// locations of a virtual tree.
//
// Bindings can be given as "host[:guest]" command line values or as YAML
// configuration file:
//
//	rootfs: /srv/guest
//	binds:
//	  - host: /usr/bin
//	    guest: /bin
//	  - host: /etc/resolv.conf
package bind
