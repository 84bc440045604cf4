package namei

// LegalNotice provides license notices for namei itself and any third-party
// dependencies.
const LegalNotice = `namei

Licensed under the terms of the MIT License.


================================================================================
namei depends on the following third-party software:
================================================================================

Go, the Go standard library, and the Go sys and text subrepositories.

https://golang.org/
https://github.com/golang/

Copyright (c) 2009 The Go Authors. All rights reserved.

Used under the terms of the 3-Clause BSD License (Google version).

--------------------------------------------------------------------------------

groupcache

https://github.com/golang/groupcache

Copyright 2013 Google Inc.

Used under the terms of the Apache License, Version 2.0.

--------------------------------------------------------------------------------

uuid

https://github.com/google/uuid

Copyright (c) 2009, 2014 Google Inc. All rights reserved.

Used under the terms of the 3-Clause BSD License (Google version).

--------------------------------------------------------------------------------

go-fuse

https://github.com/hanwen/go-fuse

Copyright (c) 2010 the Go-FUSE Authors. All rights reserved.

Used under the terms of the 3-Clause BSD License.

--------------------------------------------------------------------------------

xxh3

https://github.com/zeebo/xxh3

Copyright (c) 2019 Jeff Wendling

Used under the terms of the BSD 2-Clause License.

--------------------------------------------------------------------------------

errors

https://github.com/pkg/errors

Copyright (c) 2015, Dave Cheney <dave@cheney.net>

Used under the terms of the 2-Clause BSD License.

--------------------------------------------------------------------------------

cobra and pflag

https://github.com/spf13/cobra
https://github.com/spf13/pflag

Copyright 2013 Steve Francia <spf@spf13.com>
Copyright (c) 2012 Alex Ogier. All rights reserved.

Used under the terms of the Apache License, Version 2.0 and the 3-Clause BSD
License, respectively.

--------------------------------------------------------------------------------

color, go-isatty, go-humanize, doublestar, and yaml

https://github.com/fatih/color
https://github.com/mattn/go-isatty
https://github.com/dustin/go-humanize
https://github.com/bmatcuk/doublestar
https://gopkg.in/yaml.v2

Used under the terms of the MIT License (color, go-isatty, go-humanize,
doublestar) and the Apache License, Version 2.0 (yaml).
`
